package limits

// LimitType identifies one quota dimension of a plan.
type LimitType string

// Quota dimensions. The set is closed: use ParseLimitType for untrusted input.
const (
	Transactions          LimitType = "transactions"
	Debts                 LimitType = "debts"
	RecurringTransactions LimitType = "recurring_transactions"
	Categories            LimitType = "categories"
)

// Unlimited is the sentinel limit for "no cap".
// It is large enough that no realistic usage reaches it, which keeps the
// comparison in Allowed branch-free.
const Unlimited int64 = 999999

// All returns every limit type in display order.
func All() []LimitType {
	return []LimitType{Transactions, Debts, RecurringTransactions, Categories}
}

// ParseLimitType converts a raw string into a LimitType.
func ParseLimitType(s string) (LimitType, error) {
	switch lt := LimitType(s); lt {
	case Transactions, Debts, RecurringTransactions, Categories:
		return lt, nil
	}
	return "", ErrUnknownLimitType
}

// Valid reports whether lt is one of the known limit types.
func (lt LimitType) Valid() bool {
	_, err := ParseLimitType(string(lt))
	return err == nil
}

// Label is the noun used in user-facing copy, e.g. "10/10 transactions used".
func (lt LimitType) Label() string {
	switch lt {
	case Transactions:
		return "transactions"
	case Debts:
		return "active debts"
	case RecurringTransactions:
		return "recurring transactions"
	case Categories:
		return "categories"
	}
	return string(lt)
}

// IsUnlimited reports whether the limit value means "no cap".
func IsUnlimited(limit int64) bool {
	return limit >= Unlimited
}

// Limits is the quota of a plan.
type Limits struct {
	MonthlyTransactions   int64 `json:"monthly_transactions" yaml:"monthly_transactions" toml:"monthly_transactions"`
	ActiveDebts           int64 `json:"active_debts" yaml:"active_debts" toml:"active_debts"`
	RecurringTransactions int64 `json:"recurring_transactions" yaml:"recurring_transactions" toml:"recurring_transactions"`
	Categories            int64 `json:"categories" yaml:"categories" toml:"categories"`
}

// Get returns the limit value for lt.
func (l Limits) Get(lt LimitType) (int64, error) {
	switch lt {
	case Transactions:
		return l.MonthlyTransactions, nil
	case Debts:
		return l.ActiveDebts, nil
	case RecurringTransactions:
		return l.RecurringTransactions, nil
	case Categories:
		return l.Categories, nil
	}
	return 0, ErrUnknownLimitType
}

// Validate checks that every limit is a non-negative integer.
// Values above Unlimited are accepted and treated as unlimited.
func (l Limits) Validate() error {
	for _, lt := range All() {
		v, _ := l.Get(lt)
		if v < 0 {
			return ErrNegativeLimit
		}
	}
	return nil
}

// Usage is a user's current-period record counts.
type Usage struct {
	MonthlyTransactions   int64 `json:"monthly_transactions"`
	ActiveDebts           int64 `json:"active_debts"`
	RecurringTransactions int64 `json:"recurring_transactions"`
	Categories            int64 `json:"categories"`
}

// Get returns the usage count for lt.
func (u Usage) Get(lt LimitType) (int64, error) {
	switch lt {
	case Transactions:
		return u.MonthlyTransactions, nil
	case Debts:
		return u.ActiveDebts, nil
	case RecurringTransactions:
		return u.RecurringTransactions, nil
	case Categories:
		return u.Categories, nil
	}
	return 0, ErrUnknownLimitType
}

// Set stores n as the usage count for lt.
func (u *Usage) Set(lt LimitType, n int64) error {
	switch lt {
	case Transactions:
		u.MonthlyTransactions = n
	case Debts:
		u.ActiveDebts = n
	case RecurringTransactions:
		u.RecurringTransactions = n
	case Categories:
		u.Categories = n
	default:
		return ErrUnknownLimitType
	}
	return nil
}
