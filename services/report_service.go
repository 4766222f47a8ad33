package services

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
	config "github.com/kimanzi254/consult_admin/configs"
	"github.com/kimanzi254/consult_admin/models"
	"gorm.io/gorm"
)

// GenerateBookingsReport renders every booking into a PDF and uploads it,
// returning the download URL for the admin.
func GenerateBookingsReport(db *gorm.DB) (string, error) {
	var bookings []models.Booking
	if err := db.
		Preload("Client").
		Preload("Expert").
		Order("start_time asc").
		Find(&bookings).Error; err != nil {
		return "", fmt.Errorf("failed to load bookings for report: %w", err)
	}

	htmlData, err := renderReportHTML(bookings)
	if err != nil {
		return "", fmt.Errorf("failed to render report HTML: %w", err)
	}

	pdfBytes, err := generatePDFFromHTML(htmlData)
	if err != nil {
		return "", fmt.Errorf("failed to generate report PDF: %w", err)
	}

	return uploadReportToCloudinary(pdfBytes)
}

func renderReportHTML(bookings []models.Booking) (string, error) {
	tmpl, err := template.ParseFiles("templates/booking_report.html")
	if err != nil {
		return "", err
	}

	data := struct {
		GeneratedAt string
		Bookings    []models.Booking
	}{
		GeneratedAt: time.Now().Format("January 2, 2006 15:04"),
		Bookings:    bookings,
	}

	var renderedHTML bytes.Buffer
	if err := tmpl.Execute(&renderedHTML, data); err != nil {
		return "", err
	}
	return renderedHTML.String(), nil
}

func generatePDFFromHTML(htmlContent string) ([]byte, error) {
	ctx, cancel := chromedp.NewContext(context.Background())
	defer cancel()

	var pdfBuffer []byte
	err := chromedp.Run(ctx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, htmlContent).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			pdf, _, err := page.PrintToPDF().WithPrintBackground(true).Do(ctx)
			if err != nil {
				return err
			}
			pdfBuffer = pdf
			return nil
		}),
	)
	if err != nil {
		return nil, err
	}
	return pdfBuffer, nil
}

func uploadReportToCloudinary(fileBytes []byte) (string, error) {
	cld, err := cloudinary.NewFromURL(config.Config("CLOUDINARY_URL"))
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	uploadParams := uploader.UploadParams{
		PublicID:     fmt.Sprintf("reports/bookings_%s", uuid.New().String()),
		Folder:       "consult_admin_reports",
		ResourceType: "raw",
	}

	uploadResult, err := cld.Upload.Upload(ctx, bytes.NewReader(fileBytes), uploadParams)
	if err != nil {
		return "", err
	}

	return uploadResult.SecureURL, nil
}
