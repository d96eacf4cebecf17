package pagination

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/anonm/ticketbot/internal/domain"
)

// Vietnamese digit grouping: 1234567 renders as "1.234.567".
var viPrinter = message.NewPrinter(language.Vietnamese)

const dayLayout = "15:04:05 02/01/2006"

func renderEvent(s *domain.Session) string {
	ev := s.Current()

	var b strings.Builder
	fmt.Fprintf(&b, "*ID:* %d\n", ev.ID)
	fmt.Fprintf(&b, "*Tên sự kiện:* %s\n", ev.Name)
	fmt.Fprintf(&b, "*Ngày:* %s\n", ev.Day.Format(dayLayout))
	fmt.Fprintf(&b, "*Giá vé:* %s\n", FormatPrice(ev.Price))
	if ev.HasDeeplink() {
		fmt.Fprintf(&b, "*Thông tin thêm:* [Link](%s)", ev.Deeplink)
	} else {
		b.WriteString("*Thông tin thêm:* không có")
	}
	return b.String()
}

// FormatPrice renders a VND amount with Vietnamese digit grouping.
func FormatPrice(amount int64) string {
	return viPrinter.Sprintf("%d VND", amount)
}
