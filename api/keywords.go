package api

import (
	"encoding/json"

	"github.com/seo-optimizer/toolkit/metatags"
)

// Keywords decodes from either a JSON array or a comma separated string.
type Keywords []string

func (k *Keywords) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*k = list
		return nil
	}
	var csv string
	if err := json.Unmarshal(data, &csv); err != nil {
		return err
	}
	*k = metatags.ParseKeywords(csv)
	return nil
}
