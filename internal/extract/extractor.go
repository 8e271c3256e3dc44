package extract

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime"
	"time"

	"email-analysis/internal/models"

	_ "github.com/emersion/go-message/charset"
	"github.com/emersion/go-message/mail"
)

// ErrMalformedMessage is returned when a raw message cannot be parsed or its
// Date header is absent or unparsable.
var ErrMalformedMessage = errors.New("malformed message")

// ErrUnsupportedContent is returned when a message carries neither a
// text/plain nor a text/html body.
var ErrUnsupportedContent = errors.New("no supported text content")

// Extract parses one raw RFC822 message into a normalized record. The id is
// supplied by the caller and becomes the storage leaf key; loc is the fixed
// timezone the record's timestamp is converted into.
//
// Body selection walks the inline parts in declaration order: the first
// text/plain part wins and stops the scan; otherwise each text/html part
// overwrites the selection, so the last one found wins and is reduced to its
// text content.
func Extract(raw []byte, id string, loc *time.Location) (*models.EmailRecord, error) {
	mr, err := mail.CreateReader(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedMessage, err)
	}

	header := mr.Header

	date, err := header.Date()
	if err != nil || date.IsZero() {
		return nil, fmt.Errorf("%w: missing or unparsable Date header", ErrMalformedMessage)
	}

	subject, err := header.Subject()
	if err != nil {
		subject = header.Get("Subject")
	}

	from, err := DecodeHeader(header.Get("From"))
	if err != nil {
		from = header.Get("From")
	}

	body, err := extractBody(mr)
	if err != nil {
		return nil, err
	}

	return &models.EmailRecord{
		ID:      id,
		Subject: subject,
		From:    from,
		Date:    date.In(loc),
		Body:    body,
	}, nil
}

func extractBody(mr *mail.Reader) (string, error) {
	var body string
	found := false

	for {
		p, err := mr.NextPart()
		if err == io.EOF {
			break
		} else if err != nil {
			return "", fmt.Errorf("%w: %v", ErrMalformedMessage, err)
		}

		h, ok := p.Header.(*mail.InlineHeader)
		if !ok {
			continue
		}

		contentType, _, err := h.ContentType()
		if err != nil {
			continue
		}

		switch contentType {
		case "text/plain":
			data, err := io.ReadAll(p.Body)
			if err != nil {
				continue
			}
			return string(data), nil
		case "text/html":
			data, err := io.ReadAll(p.Body)
			if err != nil {
				continue
			}
			body = StripHTML(string(data))
			found = true
		}
	}

	if !found {
		return "", ErrUnsupportedContent
	}
	return body, nil
}

// DecodeHeader decodes MIME-encoded headers (e.g., "=?UTF-8?B?...?=") to plain text
func DecodeHeader(encoded string) (string, error) {
	decoder := new(mime.WordDecoder)
	decoded, err := decoder.DecodeHeader(encoded)
	if err != nil {
		return "", err
	}
	return decoded, nil
}
