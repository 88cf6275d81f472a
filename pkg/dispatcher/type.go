package dispatcher

import (
	"encoding/json"
	"fmt"

	"maritime-threats-backend/pkg/model"
)

// payloadField carries the JSON-encoded threat inside a stream entry; redis
// stream values must be flat strings.
const payloadField = "payload"

type IRequest interface {
	RequestUID() string
}

type Request struct {
	RequestID string `json:"request_id"`
}

func (r *Request) RequestUID() string {
	return r.RequestID
}

type IResult interface {
	Error() error
}

type Response struct {
	RequestID string `json:"request_id"`
}

type CreateThreatRequest struct {
	Request
	*model.Threat
}

// Payload encodes the threat as a redis stream entry.
func (r *CreateThreatRequest) Payload() (map[string]interface{}, error) {
	jsonData, err := json.Marshal(r.Threat)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{payloadField: string(jsonData)}, nil
}

// FromPayload decodes a redis stream entry produced by Payload.
func (r *CreateThreatRequest) FromPayload(values map[string]interface{}) error {
	raw, ok := values[payloadField].(string)
	if !ok {
		return fmt.Errorf("stream entry is missing the %s field", payloadField)
	}
	threat := &model.Threat{}
	if err := json.Unmarshal([]byte(raw), threat); err != nil {
		return err
	}
	r.Threat = threat
	return nil
}

type CreateBatchThreatsRequest struct {
	Request
	Threats []*model.Threat
}

type GetThreatsRequest struct {
	Request
	*model.SearchThreatsRequest
}

type CreateThreatResponse struct {
	IResult
	Response
	ThreatID string
	Err      error
}

func (r *CreateThreatResponse) Error() error {
	return r.Err
}

type GetThreatsResponse struct {
	IResult
	Response
	Threats []*model.Threat
	Total   int
	Err     error
}

func (r *GetThreatsResponse) Error() error {
	return r.Err
}
