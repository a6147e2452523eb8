package services

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// MaxDocumentSize is the largest accepted attachment.
const MaxDocumentSize int64 = 10 << 20 // 10MB

// sniffLen is how much of a file is read to detect its content type.
const sniffLen = 3072

// documentType ties an allowed extension to the content types its bytes may
// be detected as. The first entry is stored as the document's content type.
type documentType struct {
	contentTypes []string
}

// allowedDocumentTypes maps lower-case extensions to their accepted content.
// Legacy Office files are OLE containers and OOXML files are zip archives, so
// the generic container types are accepted for them.
var allowedDocumentTypes = map[string]documentType{
	".pdf":  {[]string{"application/pdf"}},
	".jpg":  {[]string{"image/jpeg"}},
	".jpeg": {[]string{"image/jpeg"}},
	".png":  {[]string{"image/png"}},
	".gif":  {[]string{"image/gif"}},
	".doc":  {[]string{"application/msword", "application/x-ole-storage"}},
	".docx": {[]string{"application/vnd.openxmlformats-officedocument.wordprocessingml.document", "application/zip"}},
	".xls":  {[]string{"application/vnd.ms-excel", "application/x-ole-storage"}},
	".xlsx": {[]string{"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", "application/zip"}},
}

// AllowedDocumentExtensions lists the accepted extensions in display order.
var AllowedDocumentExtensions = []string{".pdf", ".jpg", ".jpeg", ".png", ".gif", ".doc", ".docx", ".xls", ".xlsx"}

// checkDocumentHeader validates name and declared size before anything is
// read. A non-empty problem is a user-facing message for the files field.
func checkDocumentHeader(file FileUpload) (dt documentType, ext, problem string) {
	ext = strings.ToLower(filepath.Ext(file.FileName))
	dt, ok := allowedDocumentTypes[ext]
	if !ok {
		shown := ext
		if shown == "" {
			shown = "(none)"
		}
		return dt, ext, fmt.Sprintf("File type '%s' is not allowed. Allowed types: %s",
			shown, strings.Join(AllowedDocumentExtensions, ", "))
	}
	if file.Size > MaxDocumentSize {
		return dt, ext, tooLargeMessage(file.FileName)
	}
	return dt, ext, ""
}

func tooLargeMessage(fileName string) string {
	return fmt.Sprintf("File '%s' exceeds maximum size of %d MB.", fileName, MaxDocumentSize>>20)
}

// sniffDocument reads the start of r and checks the detected content type
// against dt. The returned reader yields the full content, header included.
func sniffDocument(r io.Reader, dt documentType, fileName string) (body io.Reader, problem string, err error) {
	head := make([]byte, sniffLen)
	n, err := io.ReadFull(r, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, "", err
	}
	head = head[:n]

	detected := mimetype.Detect(head)
	for m := detected; m != nil; m = m.Parent() {
		for _, ct := range dt.contentTypes {
			if m.Is(ct) {
				return io.MultiReader(bytes.NewReader(head), r), "", nil
			}
		}
	}
	return nil, fmt.Sprintf("File '%s' content (%s) does not match its extension.", fileName, detected.String()), nil
}

// limitedCounter counts bytes passing through and fails once more than max
// bytes were read, catching uploads whose declared size was wrong.
type limitedCounter struct {
	r   io.Reader
	n   int64
	max int64
}

var errDocumentTooLarge = errors.New("document exceeds maximum size")

func (c *limitedCounter) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	if c.n > c.max {
		return n, errDocumentTooLarge
	}
	return n, err
}
