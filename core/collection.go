package core

import (
	"fmt"
	"sort"
)

// Operation là thao tác trên một collection
type Operation string

const (
	OperationRead   Operation = "read"
	OperationCreate Operation = "create"
	OperationUpdate Operation = "update"
	OperationDelete Operation = "delete"
	OperationAdmin  Operation = "admin" // hiển thị collection trong trang quản trị
)

// Operations trả về tất cả operation theo thứ tự cố định
func Operations() []Operation {
	return []Operation{OperationRead, OperationCreate, OperationUpdate, OperationDelete, OperationAdmin}
}

// FieldAccess là policy riêng cho một field nhạy cảm.
// Policy zero value nghĩa là field dùng chung quyền của collection.
type FieldAccess struct {
	Read   Policy
	Update Policy
}

// CollectionAccess gom các policy khai báo cho một collection
type CollectionAccess struct {
	Slug   string
	Read   Policy
	Create Policy
	Update Policy
	Delete Policy
	Admin  Policy
	Fields map[string]FieldAccess
}

// PolicyFor trả về policy của operation. Operation chưa khai báo là lỗi cấu hình.
func (c CollectionAccess) PolicyFor(op Operation) Policy {
	var p Policy
	switch op {
	case OperationRead:
		p = c.Read
	case OperationCreate:
		p = c.Create
	case OperationUpdate:
		p = c.Update
	case OperationDelete:
		p = c.Delete
	case OperationAdmin:
		p = c.Admin
	}
	if p.IsZero() {
		panic(configError(fmt.Sprintf("collection %q has no %q policy", c.Slug, string(op)), map[string]interface{}{
			"collection": c.Slug,
			"operation":  op,
		}))
	}
	return p
}

// Check evaluate policy của operation. record == nil cho thao tác trên cả collection.
func (c CollectionAccess) Check(op Operation, p Principal, record Record) Decision {
	return Evaluate(c.PolicyFor(op), p, record)
}

// CanReadField kiểm tra principal có được đọc field trên record cụ thể không
func (c CollectionAccess) CanReadField(field string, p Principal, record Record) bool {
	fa, ok := c.Fields[field]
	if !ok || fa.Read.IsZero() {
		return true
	}
	return Evaluate(fa.Read, p, record).IsAllowed()
}

// HiddenFields trả về các field principal không được đọc trên record, theo thứ tự tên
func (c CollectionAccess) HiddenFields(p Principal, record Record) []string {
	var hidden []string
	for _, name := range c.fieldNames() {
		if !c.CanReadField(name, p, record) {
			hidden = append(hidden, name)
		}
	}
	return hidden
}

// CheckFieldUpdates kiểm tra từng field bị thay đổi.
// Trả về field đầu tiên bị từ chối cùng decision; field rỗng và Allow nếu tất cả hợp lệ.
// record == nil (ví dụ khi create) vẫn trả về boolean: AllowIf được coi là Deny vì không có record để lọc.
func (c CollectionAccess) CheckFieldUpdates(p Principal, record Record, changed []string) (string, Decision) {
	for _, name := range changed {
		fa, ok := c.Fields[name]
		if !ok || fa.Update.IsZero() {
			continue
		}
		d := Evaluate(fa.Update, p, record)
		if d.IsConditional() {
			d = Deny(ReasonNotOwner)
		}
		if !d.IsAllowed() {
			return name, d
		}
	}
	return "", Allow()
}

func (c CollectionAccess) fieldNames() []string {
	names := make([]string, 0, len(c.Fields))
	for name := range c.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
