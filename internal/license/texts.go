package license

import "fmt"

const (
	msgVersionMismatch = "Phiên bản không hợp lệ. Vui lòng cập nhật phiên bản mới!"
	msgGenericError    = "Đã xảy ra lỗi. Vui lòng thử lại sau!"
)

func fmtNotActivated(key, contact string) string {
	return fmt.Sprintf(
		"Nhấn để sao chép key: 🔑`%s`🔑\nVui lòng liên hệ [@%s](https://t.me/%s) để kích hoạt!",
		key, contact, contact,
	)
}
