package core

import "errors"

// Effect là kết quả của một lần evaluate
type Effect uint8

const (
	EffectDeny Effect = iota
	EffectAllow
	EffectAllowIf // chỉ cho phép các record khớp Filter
)

func (e Effect) String() string {
	switch e {
	case EffectAllow:
		return "allow"
	case EffectAllowIf:
		return "allow_if"
	default:
		return "deny"
	}
}

// MarshalText in effect dạng chuỗi trong JSON
func (e Effect) MarshalText() ([]byte, error) {
	return []byte(e.String()), nil
}

// Reason giải thích vì sao bị deny
type Reason string

const (
	ReasonNone             Reason = ""
	ReasonUnauthenticated  Reason = "unauthenticated"
	ReasonInsufficientRole Reason = "insufficient_role"
	ReasonNotOwner         Reason = "not_owner"
	ReasonProtectedRole    Reason = "protected_role"
)

var (
	ErrUnauthenticated  = errors.New("authentication required")
	ErrInsufficientRole = errors.New("insufficient role")
	ErrNotOwner         = errors.New("principal does not own the record")
	ErrProtectedRole    = errors.New("protected role can only be assigned by the root role")
	// ErrFilterRequired được trả về khi decision là AllowIf nhưng người gọi cần câu trả lời boolean
	ErrFilterRequired = errors.New("decision is conditional and must be applied as a query filter")
)

// Filter là điều kiện dòng: chỉ các record có Field == Value
type Filter struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

// Matches kiểm tra record có thỏa filter không
func (f Filter) Matches(record Record) bool {
	if record == nil {
		return false
	}
	value, ok := record.Field(f.Field)
	if !ok {
		return false
	}
	s, ok := normalizeID(value)
	return ok && s == f.Value
}

// Decision là kết quả có gắn tag: Allow, Deny hoặc AllowIf(filter).
// Người gọi phải xử lý cả ba trường hợp; AllowIf không phải Allow.
type Decision struct {
	Effect Effect  `json:"effect"`
	Filter *Filter `json:"filter,omitempty"`
	Reason Reason  `json:"reason,omitempty"`
}

func Allow() Decision {
	return Decision{Effect: EffectAllow}
}

func Deny(reason Reason) Decision {
	return Decision{Effect: EffectDeny, Reason: reason}
}

func AllowIf(filter Filter) Decision {
	return Decision{Effect: EffectAllowIf, Filter: &filter}
}

// IsAllowed chỉ true với Allow vô điều kiện
func (d Decision) IsAllowed() bool {
	return d.Effect == EffectAllow
}

func (d Decision) IsDenied() bool {
	return d.Effect == EffectDeny
}

func (d Decision) IsConditional() bool {
	return d.Effect == EffectAllowIf
}

// Err chuyển decision thành error cho các chỗ cần câu trả lời có/không.
// Allow → nil; AllowIf → ErrFilterRequired; Deny → sentinel theo Reason.
func (d Decision) Err() error {
	switch d.Effect {
	case EffectAllow:
		return nil
	case EffectAllowIf:
		return ErrFilterRequired
	}
	switch d.Reason {
	case ReasonUnauthenticated:
		return ErrUnauthenticated
	case ReasonNotOwner:
		return ErrNotOwner
	case ReasonProtectedRole:
		return ErrProtectedRole
	default:
		return ErrInsufficientRole
	}
}
