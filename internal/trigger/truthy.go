package trigger

import (
	"math"
	"strconv"

	"github.com/aws/aws-lambda-go/events"
	"github.com/googleapis/google-cloudevents-go/cloud/firestoredata"
)

// Lesson bodies are written by client tooling that treats null, false, zero
// and empty strings as "no content", so every source follows the same rules.

func truthy(v any) bool {
	switch v := v.(type) {
	case nil:
		return false
	case bool:
		return v
	case int:
		return v != 0
	case int64:
		return v != 0
	case float64:
		return v != 0 && !math.IsNaN(v)
	case string:
		return v != ""
	default:
		return true
	}
}

func firestoreTruthy(v *firestoredata.Value) bool {
	if v == nil {
		return false
	}

	switch t := v.GetValueType().(type) {
	case nil, *firestoredata.Value_NullValue:
		return false
	case *firestoredata.Value_BooleanValue:
		return t.BooleanValue
	case *firestoredata.Value_IntegerValue:
		return t.IntegerValue != 0
	case *firestoredata.Value_DoubleValue:
		return truthy(t.DoubleValue)
	case *firestoredata.Value_StringValue:
		return t.StringValue != ""
	default:
		return true
	}
}

func dynamoTruthy(v events.DynamoDBAttributeValue) bool {
	switch v.DataType() {
	case events.DataTypeNull:
		return false
	case events.DataTypeBoolean:
		return v.Boolean()
	case events.DataTypeString:
		return v.String() != ""
	case events.DataTypeNumber:
		n, err := strconv.ParseFloat(v.Number(), 64)
		if err != nil {
			return true
		}
		return truthy(n)
	default:
		return true
	}
}
