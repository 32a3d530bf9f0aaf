package services

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log"
	"time"

	config "github.com/anjiri1684/tour_marketplace/configs"
	"github.com/anjiri1684/tour_marketplace/database"
	"github.com/anjiri1684/tour_marketplace/models"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
)

// GenerateBookingVoucher renders a PDF voucher for a paid booking and stores
// its URL on the booking record. Runs in a goroutine after payment capture,
// so failures only log.
func GenerateBookingVoucher(bookingID uuid.UUID) {
	var booking models.Booking
	if err := database.DB.Preload("Tourist").Preload("Guide").Preload("Tour").Preload("Payment").
		First(&booking, "id = ?", bookingID).Error; err != nil {
		log.Printf("🔥 Voucher: booking %s not found: %v", bookingID, err)
		return
	}

	if booking.VoucherURL != nil {
		return
	}
	if booking.Payment.Status != "PAID" {
		log.Printf("Voucher skipped for booking %s: payment not settled", booking.Reference)
		return
	}

	htmlData, err := generateVoucherHTML(booking)
	if err != nil {
		log.Printf("🔥 Failed to generate voucher HTML: %v", err)
		return
	}

	pdfBytes, err := generatePDFFromHTML(htmlData)
	if err != nil {
		log.Printf("🔥 Failed to generate voucher PDF: %v", err)
		return
	}

	uploadURL, err := uploadToCloudinary(pdfBytes, booking.Reference)
	if err != nil {
		log.Printf("🔥 Failed to upload voucher to Cloudinary: %v", err)
		return
	}

	booking.VoucherURL = &uploadURL
	if err := database.DB.Save(&booking).Error; err != nil {
		log.Printf("🔥 Failed to store voucher URL for booking %s: %v", booking.Reference, err)
		return
	}
	log.Printf("✅ Generated and uploaded voucher for booking %s.", booking.Reference)
}

func generateVoucherHTML(booking models.Booking) (string, error) {
	tmpl, err := template.ParseFiles("templates/voucher.html")
	if err != nil {
		return "", err
	}

	data := struct {
		Reference   string
		TouristName string
		GuideName   string
		TourTitle   string
		Location    string
		BookingDate string
		BookingTime string
		Guests      int
		Amount      string
		PaidAt      string
	}{
		Reference:   booking.Reference,
		TouristName: booking.Tourist.FullName,
		GuideName:   booking.Guide.FullName,
		TourTitle:   booking.Tour.Title,
		Location:    booking.Tour.Location,
		BookingDate: booking.BookingDate,
		BookingTime: booking.BookingTime,
		Guests:      booking.NumberOfGuests,
		Amount:      fmt.Sprintf("%s %.2f", booking.Currency, booking.TotalAmount),
		PaidAt:      time.Now().Format("January 2, 2006"),
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

func uploadToCloudinary(fileBytes []byte, reference string) (string, error) {
	cld, err := cloudinary.NewFromURL(config.Config("CLOUDINARY_URL"))
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	uploadParams := uploader.UploadParams{
		PublicID:     fmt.Sprintf("vouchers/%s_%s", reference, uuid.New().String()),
		Folder:       "tour_marketplace_vouchers",
		ResourceType: "raw",
	}

	uploadResult, err := cld.Upload.Upload(ctx, bytes.NewReader(fileBytes), uploadParams)
	if err != nil {
		return "", err
	}

	return uploadResult.SecureURL, nil
}
