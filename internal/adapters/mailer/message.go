package mailer

import (
	"bytes"
	"fmt"
	"mime"
	"mime/quotedprintable"
	"net/mail"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mikey/phish-trainer/internal/core"
)

const (
	// HeaderSampleID carries the pool id of the delivered sample
	HeaderSampleID = "X-Phish-Trainer-Sample"
	// HeaderPhishing carries the ground-truth classification
	HeaderPhishing = "X-Phish-Trainer-Phishing"
)

// RenderMessage renders sample as an RFC 5322 text/plain message to rcpt
func RenderMessage(sample core.EmailSample, rcpt string, date time.Time) []byte {
	from := (&mail.Address{Name: sample.Sender, Address: sample.SenderEmail}).String()

	var b bytes.Buffer
	writeHeader(&b, "From", from)
	writeHeader(&b, "To", rcpt)
	writeHeader(&b, "Subject", mime.BEncoding.Encode("utf-8", sample.Subject))
	writeHeader(&b, "Date", date.Format(time.RFC1123Z))
	writeHeader(&b, "Message-ID", fmt.Sprintf("<%s@phish-trainer>", uuid.NewString()))
	writeHeader(&b, "MIME-Version", "1.0")
	writeHeader(&b, "Content-Type", `text/plain; charset="utf-8"`)
	writeHeader(&b, "Content-Transfer-Encoding", "quoted-printable")
	if sample.ID != "" {
		writeHeader(&b, HeaderSampleID, sample.ID)
	}
	writeHeader(&b, HeaderPhishing, strconv.FormatBool(sample.IsPhishing))
	b.WriteString("\r\n")

	qp := quotedprintable.NewWriter(&b)
	_, _ = qp.Write([]byte(strings.ReplaceAll(sample.Content, "\n", "\r\n")))
	_ = qp.Close()

	return b.Bytes()
}

func writeHeader(b *bytes.Buffer, name, value string) {
	b.WriteString(name)
	b.WriteString(": ")
	b.WriteString(value)
	b.WriteString("\r\n")
}
