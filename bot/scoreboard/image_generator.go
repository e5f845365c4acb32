package scoreboard

import (
	"bytes"
	"fmt"
	"time"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	log "github.com/sirupsen/logrus"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomono"
)

// Column defines a column in the scoreboard table
type Column struct {
	Header    string
	XPosition int
	ColorRGB  [3]float64
}

// Row represents a single row of data. Progress, when set, draws a bar under the row (0-1).
type Row struct {
	Rank     int
	Data     []string
	Progress *float64
}

// Style defines the visual style of the table
type Style struct {
	Width     int
	MinHeight int
	Padding   int
	RowHeight int
	Podium    [3][4]float64 // RGBA highlight for ranks 1-3
}

// ImageGenerator renders leaderboard tables as PNG images
type ImageGenerator struct {
	style Style
}

// WealthEntry is one row of the richest members table
type WealthEntry struct {
	Rank   int
	Name   string
	Wallet int64
	Bank   int64
}

// XPEntry is one row of the level leaderboard
type XPEntry struct {
	Rank     int
	Name     string
	Level    int64
	XP       int64
	Messages int64
	Progress float64 // percent of the current level completed
}

// NewImageGenerator creates a new image generator with default style
func NewImageGenerator() *ImageGenerator {
	return &ImageGenerator{
		style: Style{
			Width:     420,
			MinHeight: 120,
			Padding:   15,
			RowHeight: 26,
			Podium: [3][4]float64{
				{1, 0.84, 0, 0.1},
				{0.8, 0.8, 0.8, 0.08},
				{0.8, 0.5, 0.2, 0.06},
			},
		},
	}
}

// GenerateWealthScoreboard renders the richest members
func (g *ImageGenerator) GenerateWealthScoreboard(entries []WealthEntry) ([]byte, error) {
	p := g.style.Padding
	columns := []Column{
		{Header: "#", XPosition: p, ColorRGB: [3]float64{0.85, 0.85, 0.9}},
		{Header: "User", XPosition: p + 25, ColorRGB: [3]float64{1, 1, 1}},
		{Header: "Wallet", XPosition: p + 160, ColorRGB: [3]float64{0.85, 1, 0.85}},
		{Header: "Bank", XPosition: p + 240, ColorRGB: [3]float64{0.85, 0.85, 1}},
		{Header: "Total", XPosition: p + 320, ColorRGB: [3]float64{1, 0.95, 0.7}},
	}

	rows := make([]Row, len(entries))
	for i, e := range entries {
		rows[i] = Row{
			Rank: e.Rank,
			Data: []string{
				fmt.Sprintf("%d", e.Rank),
				shortName(e.Name),
				compact(e.Wallet),
				compact(e.Bank),
				compact(e.Wallet + e.Bank),
			},
		}
	}
	return g.generateTable(columns, rows)
}

// GenerateXPScoreboard renders the level leaderboard with a progress bar per member
func (g *ImageGenerator) GenerateXPScoreboard(entries []XPEntry) ([]byte, error) {
	p := g.style.Padding
	columns := []Column{
		{Header: "#", XPosition: p, ColorRGB: [3]float64{0.85, 0.85, 0.9}},
		{Header: "User", XPosition: p + 25, ColorRGB: [3]float64{1, 1, 1}},
		{Header: "Level", XPosition: p + 170, ColorRGB: [3]float64{0.7, 0.9, 1}},
		{Header: "XP", XPosition: p + 230, ColorRGB: [3]float64{0.85, 1, 0.85}},
		{Header: "Msgs", XPosition: p + 310, ColorRGB: [3]float64{1, 0.9, 1}},
	}

	rows := make([]Row, len(entries))
	for i, e := range entries {
		progress := e.Progress / 100
		rows[i] = Row{
			Rank: e.Rank,
			Data: []string{
				fmt.Sprintf("%d", e.Rank),
				shortName(e.Name),
				fmt.Sprintf("%d", e.Level),
				compact(e.XP),
				compact(e.Messages),
			},
			Progress: &progress,
		}
	}
	return g.generateTable(columns, rows)
}

// generateTable creates the actual image
func (g *ImageGenerator) generateTable(columns []Column, rows []Row) ([]byte, error) {
	start := time.Now()
	defer func() {
		log.WithField("duration_ms", time.Since(start).Milliseconds()).
			WithField("row_count", len(rows)).
			Debug("Scoreboard image generation completed")
	}()

	height := 25 + 30 + len(rows)*g.style.RowHeight + 15
	if height < g.style.MinHeight {
		height = g.style.MinHeight
	}

	dc := gg.NewContext(g.style.Width, height)
	dc.SetFillRule(gg.FillRuleWinding)

	for i := 0; i < height; i++ {
		t := float64(i) / float64(height)
		dc.SetRGB(0.02+t*0.03, 0.02+t*0.05, 0.05+t*0.1)
		dc.DrawLine(0, float64(i), float64(g.style.Width), float64(i))
		dc.Stroke()
	}

	face, err := loadFont(gomono.TTF, 11)
	if err != nil {
		return nil, fmt.Errorf("failed to load font: %w", err)
	}
	rankFace, err := loadFont(gobold.TTF, 9)
	if err != nil {
		return nil, fmt.Errorf("failed to load font: %w", err)
	}
	dc.SetFontFace(face)

	y := float64(25)

	dc.SetRGBA(0.3, 0.3, 0.4, 0.4)
	dc.DrawRectangle(0, y-15, float64(g.style.Width), 20)
	dc.Fill()

	dc.SetRGB(1, 1, 1)
	for _, col := range columns {
		drawSharpText(dc, col.Header, float64(col.XPosition), y)
	}

	dc.SetRGBA(0.6, 0.6, 0.7, 0.7)
	dc.SetLineWidth(1)
	dc.DrawLine(0, y+8, float64(g.style.Width), y+8)
	dc.Stroke()

	y += 30
	for i, row := range rows {
		if i < 3 {
			c := g.style.Podium[i]
			dc.SetRGBA(c[0], c[1], c[2], c[3])
		} else {
			dc.SetRGBA(0.5, 0.5, 0.6, 0.02)
		}
		dc.DrawRectangle(0, y-15, float64(g.style.Width), float64(g.style.RowHeight))
		dc.Fill()

		if i < 3 {
			c := g.style.Podium[i]
			dc.SetRGB(c[0], c[1], c[2])
			if i == 1 {
				dc.SetRGB(0.75, 0.75, 0.75)
			}
			dc.DrawCircle(float64(g.style.Padding+3), y-4, 5)
			dc.Fill()

			dc.SetRGB(0, 0, 0)
			dc.SetFontFace(rankFace)
			dc.DrawStringAnchored(row.Data[0], float64(g.style.Padding+3), y-5, 0.5, 0.4)
			dc.SetFontFace(face)
		} else {
			col := columns[0]
			dc.SetRGB(col.ColorRGB[0], col.ColorRGB[1], col.ColorRGB[2])
			drawSharpText(dc, row.Data[0], float64(col.XPosition), y)
		}

		for j := 1; j < len(columns) && j < len(row.Data); j++ {
			col := columns[j]
			dc.SetRGB(col.ColorRGB[0], col.ColorRGB[1], col.ColorRGB[2])
			drawSharpText(dc, row.Data[j], float64(col.XPosition), y)
		}

		if row.Progress != nil {
			g.drawProgress(dc, *row.Progress, y+6)
		}

		y += float64(g.style.RowHeight)
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("failed to encode PNG: %w", err)
	}
	return buf.Bytes(), nil
}

func (g *ImageGenerator) drawProgress(dc *gg.Context, fraction, y float64) {
	if fraction < 0 {
		fraction = 0
	}
	if fraction > 1 {
		fraction = 1
	}
	x := float64(g.style.Padding + 25)
	width := float64(g.style.Width - 2*g.style.Padding - 25)

	dc.SetRGBA(1, 1, 1, 0.1)
	dc.DrawRoundedRectangle(x, y, width, 3, 1.5)
	dc.Fill()

	dc.SetRGBA(0.35, 0.4, 0.95, 0.8)
	dc.DrawRoundedRectangle(x, y, width*fraction, 3, 1.5)
	dc.Fill()
}

func drawSharpText(dc *gg.Context, text string, x, y float64) {
	dc.Push()
	dc.SetRGBA(0, 0, 0, 0.5)
	dc.DrawString(text, x+0.5, y+0.5)
	dc.Pop()

	dc.DrawString(text, x, y)
}

// loadFont loads a font from byte data
func loadFont(fontData []byte, size float64) (font.Face, error) {
	f, err := truetype.Parse(fontData)
	if err != nil {
		return nil, err
	}
	face := truetype.NewFace(f, &truetype.Options{
		Size:       size,
		DPI:        72,
		Hinting:    font.HintingFull,
		SubPixelsX: 4,
		SubPixelsY: 4,
	})
	return face, nil
}

func shortName(name string) string {
	runes := []rune(name)
	if len(runes) > 15 {
		return string(runes[:14]) + "…"
	}
	return name
}

func compact(n int64) string {
	switch {
	case n >= 1_000_000_000:
		return fmt.Sprintf("%.1fB", float64(n)/1e9)
	case n >= 1_000_000:
		return fmt.Sprintf("%.1fM", float64(n)/1e6)
	case n >= 10_000:
		return fmt.Sprintf("%.1fk", float64(n)/1e3)
	default:
		return fmt.Sprintf("%d", n)
	}
}
