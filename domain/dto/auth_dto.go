package dto

// Res is the generic response envelope used by the auth endpoints.
type Res struct {
	ResponseCode    string      `json:"responseCode"`
	ResponseMessage string      `json:"responseMessage"`
	Data            interface{} `json:"data,omitempty"`
}
