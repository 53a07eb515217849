package seeder

import (
	"encoding/hex"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Value is one generated scalar. It renders both as a debug string and as
// a SQL literal that can be embedded directly into statement text.
type Value interface {
	fmt.Stringer
	SQL() string
	Arg() any
}

// Generator produces a fresh Value on every call.
type Generator func() Value

const timeLayout = "2006-01-02 15:04:05"

type Text string

func (v Text) String() string { return strconv.Quote(string(v)) }
func (v Text) SQL() string    { return QuoteString(string(v)) }
func (v Text) Arg() any       { return string(v) }

type Int int64

func (v Int) String() string { return strconv.FormatInt(int64(v), 10) }
func (v Int) SQL() string    { return strconv.FormatInt(int64(v), 10) }
func (v Int) Arg() any       { return int64(v) }

type Float float64

func (v Float) String() string { return strconv.FormatFloat(float64(v), 'g', -1, 64) }
func (v Float) Arg() any       { return float64(v) }

// SQL renders NaN and the infinities as the quoted spellings PostgreSQL
// accepts for float columns.
func (v Float) SQL() string {
	f := float64(v)
	switch {
	case math.IsNaN(f):
		return "'NaN'"
	case math.IsInf(f, 1):
		return "'Infinity'"
	case math.IsInf(f, -1):
		return "'-Infinity'"
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// Uint holds unsigned values that do not fit in Int.
type Uint uint64

func (v Uint) String() string { return strconv.FormatUint(uint64(v), 10) }
func (v Uint) SQL() string    { return strconv.FormatUint(uint64(v), 10) }

// Arg falls back to the decimal string above MaxInt64, which database/sql
// drivers reject as a uint64.
func (v Uint) Arg() any {
	if uint64(v) > math.MaxInt64 {
		return strconv.FormatUint(uint64(v), 10)
	}
	return int64(v)
}

type Bool bool

func (v Bool) String() string { return strconv.FormatBool(bool(v)) }

func (v Bool) SQL() string {
	if v {
		return "TRUE"
	}
	return "FALSE"
}

func (v Bool) Arg() any { return bool(v) }

type UUID uuid.UUID

func (v UUID) String() string { return uuid.UUID(v).String() }
func (v UUID) SQL() string    { return QuoteString(uuid.UUID(v).String()) }
func (v UUID) Arg() any       { return uuid.UUID(v).String() }

type Time time.Time

func (v Time) String() string { return time.Time(v).Format(time.RFC3339) }
func (v Time) SQL() string    { return QuoteString(time.Time(v).Format(timeLayout)) }
func (v Time) Arg() any       { return time.Time(v) }

// Bytes renders as a hex string literal.
type Bytes []byte

func (v Bytes) String() string { return fmt.Sprintf("%x", []byte(v)) }
func (v Bytes) SQL() string    { return QuoteString(hex.EncodeToString(v)) }
func (v Bytes) Arg() any       { return []byte(v) }

type nullValue struct{}

// Null renders as SQL NULL.
var Null Value = nullValue{}

func (nullValue) String() string { return "NULL" }
func (nullValue) SQL() string    { return "NULL" }
func (nullValue) Arg() any       { return nil }

// Raw is emitted verbatim, e.g. DEFAULT or CURRENT_TIMESTAMP. It must only
// ever carry trusted text.
type Raw string

func (v Raw) String() string { return string(v) }
func (v Raw) SQL() string    { return string(v) }
func (v Raw) Arg() any       { return string(v) }

// QuoteString wraps s in single quotes, doubling any embedded quote.
func QuoteString(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// ValueOf converts a plain Go value into a Value.
func ValueOf(val any) Value {
	switch v := val.(type) {
	case nil:
		return Null
	case Value:
		return v
	case string:
		return Text(v)
	case int:
		return Int(v)
	case int8:
		return Int(v)
	case int16:
		return Int(v)
	case int32:
		return Int(v)
	case int64:
		return Int(v)
	case uint:
		return unsigned(uint64(v))
	case uint64:
		return unsigned(v)
	case uint8:
		return Int(v)
	case uint16:
		return Int(v)
	case uint32:
		return Int(v)
	case float32:
		return Float(v)
	case float64:
		return Float(v)
	case bool:
		return Bool(v)
	case time.Time:
		return Time(v)
	case uuid.UUID:
		return UUID(v)
	case []byte:
		return Bytes(v)
	case fmt.Stringer:
		return Text(v.String())
	default:
		return Text(fmt.Sprintf("%v", v))
	}
}

func unsigned(v uint64) Value {
	if v > math.MaxInt64 {
		return Uint(v)
	}
	return Int(v)
}

// Const returns a Generator that always yields val.
func Const(val any) Generator {
	v := ValueOf(val)
	return func() Value { return v }
}
