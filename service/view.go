package service

import (
	"encoding/json"

	"github.com/techmaster-vietnam/goerrorkit"
)

// View là bản JSON của record sau khi đã bỏ các field người xem không được đọc
type View map[string]interface{}

// newView serialize v rồi xóa các field trong hidden
func newView(v interface{}, hidden []string) (View, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, goerrorkit.WrapWithMessage(err, "Lỗi khi serialize dữ liệu")
	}
	var view View
	if err := json.Unmarshal(data, &view); err != nil {
		return nil, goerrorkit.WrapWithMessage(err, "Lỗi khi serialize dữ liệu")
	}
	for _, name := range hidden {
		delete(view, name)
	}
	return view, nil
}
