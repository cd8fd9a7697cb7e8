package geocode

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"strings"

	"github.com/eviction-cares/internal/models"
)

// Response columns: id, input address, match status, match type,
// matched address, "lon,lat", tiger line id, side.
const (
	colID       = 0
	colStatus   = 2
	colLocation = 5
)

// encodeRequest builds the multipart body for one chunk: the rows as a
// header-less CRLF CSV attached as addressFile, plus the benchmark field.
func encodeRequest(inputs []BatchInput, benchmark string) (body []byte, contentType string, err error) {
	var rows bytes.Buffer
	w := csv.NewWriter(&rows)
	w.UseCRLF = true
	for _, in := range inputs {
		if err := w.Write([]string{in.ID, in.Street, in.City, in.State, in.Zip}); err != nil {
			return nil, "", fmt.Errorf("failed to encode row %s: %w", in.ID, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, "", fmt.Errorf("failed to encode rows: %w", err)
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="addressFile"; filename="input.csv"`)
	header.Set("Content-Type", "text/csv")
	part, err := mw.CreatePart(header)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create file part: %w", err)
	}
	if _, err := part.Write(rows.Bytes()); err != nil {
		return nil, "", fmt.Errorf("failed to write file part: %w", err)
	}
	if err := mw.WriteField("benchmark", benchmark); err != nil {
		return nil, "", fmt.Errorf("failed to write benchmark field: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to close multipart body: %w", err)
	}
	return buf.Bytes(), mw.FormDataContentType(), nil
}

var errMalformed = errors.New("malformed geocoder response")

// parseResponse decodes a batch response. Every row must carry an id and a
// known match status; anything else (an HTML error page, a truncated body)
// is reported as malformed so the chunk can be retried.
func parseResponse(body []byte) ([]BatchResult, error) {
	r := csv.NewReader(bytes.NewReader(body))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	var out []BatchResult
	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", errMalformed, err)
		}
		if len(record) <= colStatus || strings.TrimSpace(record[colID]) == "" {
			return nil, fmt.Errorf("%w: short row %q", errMalformed, strings.Join(record, ","))
		}

		res := BatchResult{ID: strings.TrimSpace(record[colID]), MatchStatus: strings.TrimSpace(record[colStatus])}
		switch res.MatchStatus {
		case StatusMatch:
			if len(record) > colLocation {
				// A Match without a usable location is treated as unmatched.
				if p, err := models.ParseLonLat(record[colLocation]); err == nil {
					res.Location = p
				}
			}
		case StatusNoMatch, StatusTie:
		default:
			return nil, fmt.Errorf("%w: unknown match status %q", errMalformed, res.MatchStatus)
		}
		out = append(out, res)
	}

	if len(out) == 0 {
		return nil, fmt.Errorf("%w: empty body", errMalformed)
	}
	return out, nil
}
