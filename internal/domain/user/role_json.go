package user

import "encoding/json"

// The backend has been observed sending roles both as numbers and as tags.
// Decoding normalizes right at the boundary so nothing else has to care.
func (r *Role) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*r = NormalizeRole(raw)
	return nil
}

func (r Role) MarshalJSON() ([]byte, error) {
	return json.Marshal(int(r))
}
