package bot

import (
	"fmt"
	"strings"

	"github.com/anonm/ticketbot/internal/domain"
)

const (
	msgActivated    = "Key đã được kích hoạt!"
	msgSearchUsage  = "Vui lòng nhập từ khóa tìm kiếm sau lệnh /search. Ví dụ: /search concert"
	msgSearchEmpty  = "Vui lòng nhập từ khóa tìm kiếm hợp lệ."
	msgNoResults    = "Không tìm thấy sự kiện nào phù hợp."
	msgSearchError  = "Đã xảy ra lỗi trong quá trình tìm kiếm."
	msgNoHistory    = "Bạn chưa tìm kiếm sự kiện nào."
	msgHistoryError = "Không thể tải lịch sử tìm kiếm. Vui lòng thử lại sau!"
)

func fmtWelcome(contact string) string {
	return fmt.Sprintf(`*Chào mừng đến với TicketBot!*

Bạn có thể sử dụng các lệnh sau để tương tác với bot:
- `+"`/key`"+`: Nhận key máy của bạn và kích hoạt.
- `+"`/search <từ khóa>`"+`: Tìm kiếm sự kiện theo từ khóa.
- `+"`/recent`"+`: Xem các tìm kiếm gần đây.

*Ví dụ:*
`+"`/search concert`"+`

Nếu bạn cần hỗ trợ, vui lòng liên hệ [@%s](https://t.me/%s).`, contact, contact)
}

func fmtRecent(records []*domain.SearchRecord) string {
	var b strings.Builder
	b.WriteString("*Tìm kiếm gần đây:*\n")
	for _, rec := range records {
		fmt.Fprintf(&b, "- `%s` (%d kết quả) — %s\n",
			rec.Query, rec.ResultCount, rec.CreatedAt.Format("02/01/2006 15:04"))
	}
	return b.String()
}
