package services

import (
	"bytes"
	"database/sql"
	"fmt"

	"github.com/phpdave11/gofpdf"

	"hotelapi/internal/domain"
	"hotelapi/internal/repositories"
	"hotelapi/internal/utils"
)

// VoucherService renders the printable booking voucher handed to guests.
type VoucherService struct {
	BookingRepo repositories.BookingRepository
	RoomRepo    repositories.RoomRepository
	UserRepo    repositories.UserRepository
	RequestID   string
	Loader      func(domain.ID) (voucherData, error)
}

type voucherData struct {
	BookingID  domain.ID
	RoomNumber int
	GuestName  string
	GuestPhone string
	CheckIn    string
	CheckOut   string
	Status     string
}

func (s VoucherService) GenerateVoucher(bookingID domain.ID) ([]byte, string, error) {
	data, err := s.loadVoucherData(bookingID)
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "voucher", "generate", fmt.Sprintf("booking_id=%d", bookingID))
	return buildVoucherPDF(data)
}

func (s VoucherService) loadVoucherData(bookingID domain.ID) (voucherData, error) {
	if s.Loader != nil {
		return s.Loader(bookingID)
	}

	booking, err := s.BookingRepo.GetByID(bookingID)
	if err == sql.ErrNoRows {
		return voucherData{}, domain.NotFoundError{Resource: "booking"}
	}
	if err != nil {
		return voucherData{}, domain.InternalError{Msg: "failed to load booking", Err: err}
	}

	room, err := s.RoomRepo.GetByID(booking.RoomID)
	if err != nil {
		return voucherData{}, domain.NotFoundError{Resource: "room", Err: err}
	}
	guest, err := s.UserRepo.GetByID(booking.UserID)
	if err != nil {
		return voucherData{}, domain.NotFoundError{Resource: "guest", Err: err}
	}

	out := voucherData{
		BookingID:  booking.ID,
		RoomNumber: room.Number,
		GuestName:  guest.Name,
		GuestPhone: fmt.Sprintf("+%s (%s) %s", guest.PhoneDDI, guest.PhoneDDD, guest.Phone),
		CheckIn:    utils.FormatDateTime(booking.CheckIn),
		CheckOut:   "open",
		Status:     booking.Status.Label(),
	}
	if booking.CheckOut != nil {
		out.CheckOut = utils.FormatDateTime(*booking.CheckOut)
	}
	return out, nil
}

func buildVoucherPDF(d voucherData) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Booking Voucher", false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "BOOKING VOUCHER")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Booking   : #%d", d.BookingID),
		fmt.Sprintf("Room      : %d", d.RoomNumber),
		fmt.Sprintf("Guest     : %s", safe(d.GuestName, "-")),
		fmt.Sprintf("Phone     : %s", safe(d.GuestPhone, "-")),
		fmt.Sprintf("Check-in  : %s", safe(d.CheckIn, "-")),
		fmt.Sprintf("Check-out : %s", safe(d.CheckOut, "-")),
		fmt.Sprintf("Status    : %s", safe(d.Status, "-")),
	}
	for _, line := range lines {
		pdf.Cell(0, 7, line)
		pdf.Ln(7)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "Please present this voucher at the front desk on arrival.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("VOUCHER_%d_ROOM_%d.pdf", d.BookingID, d.RoomNumber)
	return buf.Bytes(), filename, nil
}

func safe(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
