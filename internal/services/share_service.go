package services

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
	qrcode "github.com/skip2/go-qrcode"
	"github.com/tunedeck/backend/internal/config"
	"github.com/tunedeck/backend/internal/models"
)

type ShareService struct {
	cfg *config.Config
}

func NewShareService(cfg *config.Config) *ShareService { return &ShareService{cfg: cfg} }

// GeneratePlaylistPDF renders an A4 PDF with the playlist's track list and a
// QR code pointing at the frontend's playlist page.
func (s *ShareService) GeneratePlaylistPDF(playlist *models.Playlist) ([]byte, error) {
	shareURL := fmt.Sprintf("%s/playlists/%d", s.cfg.FrontendURL, playlist.ID)

	// Create QR PNG in memory
	var qrBuf bytes.Buffer
	png, err := qrcode.Encode(shareURL, qrcode.Medium, 512)
	if err != nil {
		return nil, err
	}
	qrBuf.Write(png)

	// Create PDF
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 18)
	pdf.Cell(0, 10, playlist.Name)
	pdf.Ln(12)
	pdf.SetFont("Arial", "", 12)
	if playlist.Description != "" {
		pdf.MultiCell(0, 6, playlist.Description, "", "L", false)
		pdf.Ln(4)
	}
	pdf.MultiCell(0, 6, fmt.Sprintf("URL: %s", shareURL), "", "L", false)

	// Register image from reader
	opt := gofpdf.ImageOptions{ImageType: "PNG", ReadDpi: true}
	pdf.RegisterImageOptionsReader("qr", opt, bytes.NewReader(qrBuf.Bytes()))

	// Center QR on the page
	x := (210.0 - 80.0) / 2.0 // A4 width 210mm, QR size 80mm
	y := pdf.GetY() + 6
	pdf.ImageOptions("qr", x, y, 80, 80, false, opt, 0, "")
	pdf.SetY(y + 86)

	// Track list
	pdf.SetFont("Arial", "B", 13)
	pdf.Cell(0, 8, "Tracks")
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 11)
	for i, track := range playlist.Tracks {
		line := fmt.Sprintf("%d.", i+1)
		if track.Music != nil {
			line = fmt.Sprintf("%d. %s - %s", i+1, track.Music.Title, track.Music.ChannelTitle)
		}
		pdf.MultiCell(0, 6, line, "", "L", false)
	}

	// Output to buffer
	var out bytes.Buffer
	if err := pdf.Output(&out); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}
