package model

import "time"

// BookingDocument is an uploaded travel document (ticket, confirmation,
// voucher) held in memory with the session. Content is stored as-is and
// offered back for download byte-identical; no validation beyond size and
// extension happens at upload time.
type BookingDocument struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Type        string    `json:"type"`
	Notes       string    `json:"notes,omitempty"`
	ContentType string    `json:"content_type"`
	Size        int64     `json:"size"`
	Content     []byte    `json:"-"`
	TextPreview string    `json:"text_preview,omitempty"`
	UploadedAt  time.Time `json:"uploaded_at"`
}

func (d BookingDocument) Clone() BookingDocument {
	out := d
	out.Content = append([]byte(nil), d.Content...)
	return out
}
