package sheet

// R builds a row from loosely typed values: nil is empty, numeric Go
// types become numbers and strings become text. It keeps hand-written
// fixtures short.
func R(values ...interface{}) Row {
	row := make(Row, len(values))
	for i, v := range values {
		switch val := v.(type) {
		case nil:
			row[i] = Empty()
		case Cell:
			row[i] = val
		case float64:
			row[i] = Number(val)
		case int:
			row[i] = Number(float64(val))
		case string:
			row[i] = Text(val)
		default:
			row[i] = Empty()
		}
	}
	return row
}
