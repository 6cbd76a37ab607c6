package services

import (
	"HospitalMgmt/invoice"
	"HospitalMgmt/logger"
	"HospitalMgmt/mailer"
	"HospitalMgmt/models"
	"HospitalMgmt/utils"
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
)

const (
	OPDInvoiceTitle       = "OPD Invoice"
	PathologyInvoiceTitle = "Pathology Invoice"
)

// Document is a rendered invoice ready to be served or mailed.
type Document struct {
	InvoiceNumber string
	FileName      string
	Data          []byte
}

type OPDBillReader interface {
	GetByID(ctx context.Context, id uint) (*models.OPDBill, error)
}

type PathologyBillReader interface {
	GetByID(ctx context.Context, id uint) (*models.PathologyBill, error)
}

type InvoiceService struct {
	opd        OPDBillReader
	pathology  PathologyBillReader
	mail       mailer.Mailer
	clinicName string
}

func NewInvoiceService(opd OPDBillReader, pathology PathologyBillReader, mail mailer.Mailer, clinicName string) *InvoiceService {
	return &InvoiceService{opd: opd, pathology: pathology, mail: mail, clinicName: clinicName}
}

func (s *InvoiceService) OPDInvoice(ctx context.Context, id uint) (*Document, error) {
	bill, err := s.opd.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	lines := make([]invoice.Line, 0, len(bill.Items))
	for _, item := range bill.Items {
		lines = append(lines, invoice.Line{
			Label:     item.Label(),
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Total:     item.LineTotal(),
		})
	}
	return render(OPDInvoiceTitle, bill.Base(), bill.Patient.Name, lines)
}

func (s *InvoiceService) PathologyInvoice(ctx context.Context, id uint) (*Document, error) {
	bill, err := s.pathology.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	lines := make([]invoice.Line, 0, len(bill.Items))
	for _, test := range bill.Items {
		lines = append(lines, invoice.Line{
			Label:     test.Label(),
			Quantity:  test.Quantity,
			UnitPrice: test.UnitPrice,
			Total:     test.LineTotal(),
		})
	}
	return render(PathologyInvoiceTitle, bill.Base(), bill.Patient.Name, lines)
}

func (s *InvoiceService) EmailOPDInvoice(ctx context.Context, id uint, req models.InvoiceEmailRequest) error {
	if err := utils.ValidateInvoiceEmail(req); err != nil {
		return err
	}
	doc, err := s.OPDInvoice(ctx, id)
	if err != nil {
		return err
	}
	return s.send(req.To, doc)
}

func (s *InvoiceService) EmailPathologyInvoice(ctx context.Context, id uint, req models.InvoiceEmailRequest) error {
	if err := utils.ValidateInvoiceEmail(req); err != nil {
		return err
	}
	doc, err := s.PathologyInvoice(ctx, id)
	if err != nil {
		return err
	}
	return s.send(req.To, doc)
}

func (s *InvoiceService) send(to string, doc *Document) error {
	subject := fmt.Sprintf("%s invoice %s", s.clinicName, doc.InvoiceNumber)
	err := s.mail.Send(mailer.Message{
		To:      to,
		Subject: subject,
		Text:    fmt.Sprintf("Please find invoice %s from %s attached.", doc.InvoiceNumber, s.clinicName),
		Attachment: &mailer.Attachment{
			Name:        doc.FileName,
			ContentType: "application/pdf",
			Data:        doc.Data,
		},
	})
	if err != nil {
		return err
	}
	logger.Log.WithFields(logrus.Fields{"invoice_number": doc.InvoiceNumber, "to": to}).Info("Invoice mailed")
	return nil
}

func render(title string, base *models.BillingBase, patientName string, lines []invoice.Line) (*Document, error) {
	data, err := invoice.Render(title, invoice.Header{
		InvoiceNumber: base.InvoiceNumber,
		PatientName:   patientName,
		BillingDate:   base.BillingTime(),
		Totals:        base.Totals(),
	}, lines)
	if err != nil {
		return nil, err
	}
	return &Document{
		InvoiceNumber: base.InvoiceNumber,
		FileName:      invoice.FileName(base.InvoiceNumber),
		Data:          data,
	}, nil
}
