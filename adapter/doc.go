// Package adapter converts typed values to and from field text.
//
// Each constructor returns a FieldAdapter for one scalar type:
//
//   - NewInt8, NewInt16, NewInt32, NewInt64
//   - NewDecimal (github.com/shopspring/decimal)
//   - NewFloat32, NewFloat64
//   - NewBool
//   - NewDate, NewDateTime (time.Time)
//   - NewString
//   - NewUUID (github.com/google/uuid), NewKSUID (github.com/segmentio/ksuid)
//
// Values are wrapped in Nullable so that null survives the round trip:
//
//	amount, _ := adapter.NewDecimal(adapter.WithNumberFormat("#,##0.00"))
//	field := amount.Emit(adapter.Value(decimal.RequireFromString("1234.5")))
//	// field.Text == "1,234.50"
//
//	v, err := amount.Parse("oops")
//	// v.IsNull() == true, errors.Is(err, errs.ErrMalformedField) == true
//
// # Null
//
// WithNullFormat sets a text that stands for null. Without one, Emit returns
// a null delimited.Field and the writer's escape table decides its encoding.
// Empty text is malformed for every type except string unless it is the
// null format.
//
// # Numbers
//
// Integers reject values outside their range with errs.ErrFieldOverflow
// instead of wrapping. Decimals without a pattern follow the OutputStyle:
//
//	| Value      | StyleDefault | StylePlain   | StyleEngineering |
//	|------------|--------------|--------------|------------------|
//	| 12E+10     | 1.2E+11      | 120000000000 | 120E+9           |
//	| 0.00000012 | 1.2E-7       | 0.00000012   | 120E-9           |
//	| 123.45     | 123.45       | 123.45       | 123.45           |
//
// Symbols holds the locale-dependent decimal, group and minus signs and the
// texts of NaN and infinity. WithLocale derives them from golang.org/x/text.
package adapter
