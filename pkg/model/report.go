package model

import (
	"encoding/json"
	"strings"
)

// StringList tolerates the shapes language models actually produce for list
// fields: null, a single string, or a list with empty entries mixed in.
type StringList []string

func (s *StringList) UnmarshalJSON(data []byte) error {
	var v interface{}
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}

	switch val := v.(type) {
	case string:
		if strings.TrimSpace(val) == "" {
			*s = nil
			return nil
		}
		*s = StringList{val}
	case []interface{}:
		out := make(StringList, 0, len(val))
		for _, item := range val {
			str, ok := item.(string)
			if !ok || strings.TrimSpace(str) == "" {
				continue
			}
			out = append(out, str)
		}
		if len(out) == 0 {
			*s = nil
			return nil
		}
		*s = out
	default:
		*s = nil
	}
	return nil
}

// ThreatReport is a single identified threat, either produced by the agent
// or submitted through the create endpoint.
type ThreatReport struct {
	Title           string     `json:"title" binding:"required"`
	Region          string     `json:"region" binding:"required"`
	Countries       StringList `json:"countries"`
	Category        string     `json:"category" binding:"required"`
	Description     string     `json:"description" binding:"required"`
	PotentialImpact string     `json:"potential_impact"`
	SourceURLs      StringList `json:"source_urls"`
	DateMentioned   string     `json:"date_mentioned"`
}

func (r *ThreatReport) ToThreat() *Threat {
	return &Threat{
		Title:           r.Title,
		Region:          r.Region,
		Countries:       []string(r.Countries),
		Category:        r.Category,
		Description:     r.Description,
		PotentialImpact: r.PotentialImpact,
		SourceURLs:      []string(r.SourceURLs),
		DateMentioned:   r.DateMentioned,
	}
}
