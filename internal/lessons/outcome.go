package lessons

type Result int

const (
	ResultSent Result = iota
	ResultFailed
	ResultInvalidFormat
	ResultInvalidDate
	ResultNotSunday
	ResultNoData
	ResultEmptyLesson
)

func (r Result) String() string {
	switch r {
	case ResultSent:
		return "sent"
	case ResultFailed:
		return "failed"
	case ResultInvalidFormat:
		return "invalid_format"
	case ResultInvalidDate:
		return "invalid_date"
	case ResultNotSunday:
		return "not_sunday"
	case ResultNoData:
		return "no_data"
	case ResultEmptyLesson:
		return "empty_lesson"
	default:
		return "unknown"
	}
}

// Outcome is the terminal state of a single Handle call.
// DeliveryID is set for ResultSent, Message for ResultSent and ResultFailed,
// Err for ResultFailed, ResultInvalidFormat and ResultInvalidDate.
type Outcome struct {
	Result     Result
	DeliveryID string
	Message    *Message
	Err        error
}

func (o Outcome) Skipped() bool {
	return o.Result != ResultSent && o.Result != ResultFailed
}

func skipped(r Result, err error) Outcome {
	return Outcome{Result: r, Err: err}
}
