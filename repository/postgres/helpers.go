package postgres

import "encoding/json"

func marshalJSON(v interface{}) []byte {
	b, err := json.Marshal(v)
	if err != nil {
		return []byte("[]")
	}
	return b
}

func unmarshalJSON(data []byte, v interface{}) {
	if len(data) == 0 {
		return
	}
	_ = json.Unmarshal(data, v)
}
