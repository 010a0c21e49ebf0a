// Package export renders shipping entries as the courier bulk-upload CSV
// sheet. The column set and header literals are fixed by the downstream
// courier tool and are not configurable.
package export

import (
	"strconv"
	"strings"

	"github.com/seedkitapp/seedkit-backend/internal/document"
)

// bom makes spreadsheet tools pick UTF-8 for the Korean headers.
const bom = "\ufeff"

// Columns three and four (other contact, postal code) are not part of the
// entry model and are emitted empty for a human to fill in downstream.
var headers = [10]string{
	"받는분성명",
	"받는분전화번호",
	"받는분기타연락처",
	"받는분우편번호",
	"받는분주소",
	"품목명",
	"옵션",
	"수량",
	"배송메세지",
	"인스타그램",
}

// Build serializes entries into CSV bytes. Every field is double-quoted with
// embedded quotes doubled, rows end in CRLF, and the whole output is
// BOM-prefixed. An empty entry list yields no bytes at all.
func Build(entries []document.ShippingEntry) []byte {
	if len(entries) == 0 {
		return []byte{}
	}

	var sb strings.Builder
	sb.WriteString(bom)
	writeRow(&sb, headers[:])
	for _, entry := range entries {
		writeRow(&sb, []string{
			entry.Name,
			entry.Phone,
			"",
			"",
			entry.Address,
			entry.ProductName,
			entry.Size,
			strconv.Itoa(entry.Quantity),
			entry.Message,
			entry.InstagramID,
		})
	}
	return []byte(sb.String())
}

// Filename derives the download name from the collection name.
func Filename(collectionName string) string {
	return strings.TrimSpace(collectionName) + "_shipping_export.csv"
}

func writeRow(sb *strings.Builder, fields []string) {
	for i, field := range fields {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteByte('"')
		sb.WriteString(strings.ReplaceAll(field, `"`, `""`))
		sb.WriteByte('"')
	}
	sb.WriteString("\r\n")
}
