package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ProtocolReader decodes the referee's textual protocol:
//
//	$$$ exec p1 : [path/to/bot]
//	Anfield 20 15:
//	    01234567890123456789
//	000 ....................
//	...
//	Piece 4 1:
//	.OO.
//
// The exec line appears once at game start; every turn then begins
// with an Anfield block followed by a Piece block. ReadTurn returns
// io.EOF once the referee closes the stream.
type ProtocolReader struct {
	r         *bufio.Reader
	player    Player
	hasPlayer bool
}

func NewProtocolReader(r io.Reader) *ProtocolReader {
	return &ProtocolReader{r: bufio.NewReader(r)}
}

func (p *ProtocolReader) ReadTurn() (GameState, error) {
	line, err := p.readLine()
	if err != nil {
		return GameState{}, err
	}
	if strings.HasPrefix(line, "$$$") {
		player, err := parsePlayerLine(line)
		if err != nil {
			return GameState{}, err
		}
		p.player = player
		p.hasPlayer = true
		line, err = p.readLine()
		if err != nil {
			return GameState{}, err
		}
	}
	if !p.hasPlayer {
		return GameState{}, fmt.Errorf("turn received before exec line")
	}

	grid, err := p.parseAnfield(line)
	if err != nil {
		return GameState{}, err
	}
	piece, err := p.parsePiece()
	if err != nil {
		return GameState{}, err
	}
	return GameState{Player: p.player, Grid: grid, Piece: piece}, nil
}

func (p *ProtocolReader) readLine() (string, error) {
	line, err := p.r.ReadString('\n')
	if err != nil {
		if err == io.EOF && strings.TrimSpace(line) != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// parsePlayerLine extracts the player number from
// "$$$ exec p1 : [path]".
func parsePlayerLine(line string) (Player, error) {
	idx := strings.Index(line, "p")
	if idx < 0 || idx+1 >= len(line) {
		return 0, fmt.Errorf("exec line missing player number: %q", line)
	}
	digits := line[idx+1:]
	end := 0
	for end < len(digits) && digits[end] >= '0' && digits[end] <= '9' {
		end++
	}
	n, err := strconv.Atoi(digits[:end])
	if err != nil {
		return 0, fmt.Errorf("exec line player number: %w", err)
	}
	switch n {
	case 1:
		return Player1, nil
	case 2:
		return Player2, nil
	default:
		return 0, fmt.Errorf("unsupported player number %d", n)
	}
}

func (p *ProtocolReader) parseAnfield(header string) (Grid, error) {
	width, height, err := parseBlockHeader(header, "Anfield")
	if err != nil {
		return Grid{}, err
	}
	// Column index ruler, no grid content.
	if _, err := p.readLine(); err != nil {
		return Grid{}, fmt.Errorf("anfield ruler line: %w", err)
	}
	rows := make([]string, 0, height)
	for i := 0; i < height; i++ {
		line, err := p.readLine()
		if err != nil {
			return Grid{}, fmt.Errorf("anfield row %d: %w", i, err)
		}
		row, err := stripRowNumber(line, width)
		if err != nil {
			return Grid{}, fmt.Errorf("anfield row %d: %w", i, err)
		}
		rows = append(rows, row)
	}
	return GridFromRows(rows), nil
}

func (p *ProtocolReader) parsePiece() (Shape, error) {
	header, err := p.readLine()
	if err != nil {
		return Shape{}, fmt.Errorf("piece header: %w", err)
	}
	width, height, err := parseBlockHeader(header, "Piece")
	if err != nil {
		return Shape{}, err
	}
	rows := make([]string, 0, height)
	for i := 0; i < height; i++ {
		line, err := p.readLine()
		if err != nil {
			return Shape{}, fmt.Errorf("piece row %d: %w", i, err)
		}
		if len(line) > width {
			line = line[:width]
		}
		rows = append(rows, line)
	}
	return ShapeFromRows(rows), nil
}

// parseBlockHeader reads "Anfield W H:" / "Piece W H:" dimensions.
func parseBlockHeader(line, keyword string) (int, int, error) {
	fields := strings.Fields(line)
	if len(fields) < 3 || !strings.EqualFold(fields[0], keyword) {
		return 0, 0, fmt.Errorf("malformed %s header: %q", keyword, line)
	}
	width, err := strconv.Atoi(fields[1])
	if err != nil {
		return 0, 0, fmt.Errorf("%s width: %w", keyword, err)
	}
	height, err := strconv.Atoi(strings.TrimSuffix(fields[2], ":"))
	if err != nil {
		return 0, 0, fmt.Errorf("%s height: %w", keyword, err)
	}
	if width <= 0 || height <= 0 {
		return 0, 0, fmt.Errorf("%s dimensions %dx%d out of range", keyword, width, height)
	}
	return width, height, nil
}

// stripRowNumber drops the "000 " prefix from an Anfield row.
func stripRowNumber(line string, width int) (string, error) {
	idx := strings.IndexByte(line, ' ')
	if idx < 0 {
		return "", fmt.Errorf("missing row number prefix: %q", line)
	}
	row := line[idx+1:]
	if len(row) < width {
		return "", fmt.Errorf("row shorter than width %d: %q", width, line)
	}
	return row[:width], nil
}
