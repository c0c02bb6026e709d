package calculator

// CalcRequest is the JSON body for binary operations (add, subtract, multiply, divide).
type CalcRequest struct {
	A float64 `json:"a"`
	B float64 `json:"b"`
}

// CalcResponse is the JSON response for binary operations. Result is rounded
// to 12 significant digits and Display is Result as the keypad shows it.
type CalcResponse struct {
	Operation string  `json:"operation"`
	A         float64 `json:"a"`
	B         float64 `json:"b"`
	Result    float64 `json:"result"`
	Display   string  `json:"display"`
}

// ChainStep describes a single step in a chained calculation.
type ChainStep struct {
	Op    string  `json:"op"`    // "add", "subtract", "multiply", "divide"
	Value float64 `json:"value"` // right operand applied to the running total
}

// ChainRequest is the JSON body for POST /calculator/chain.
type ChainRequest struct {
	Initial float64     `json:"initial"`
	Steps   []ChainStep `json:"steps"`
}

// ChainResponse is the JSON response for POST /calculator/chain.
type ChainResponse struct {
	Initial float64       `json:"initial"`
	Steps   []ChainResult `json:"steps"`
	Result  float64       `json:"result"`
	Display string        `json:"display"`
}

// ChainResult records one executed step.
type ChainResult struct {
	Op     string  `json:"op"`
	Value  float64 `json:"value"`
	Result float64 `json:"result"`
}

// KeysRequest is the JSON body for POST /calculator/keys: key presses as they
// appear on the keypad, e.g. ["1", "2", "+", "3", "4", "="].
type KeysRequest struct {
	Keys []string `json:"keys"`
}

// KeysResponse is the engine snapshot after replaying KeysRequest.Keys on a
// fresh calculator.
type KeysResponse struct {
	Keys       int    `json:"keys"`
	Display    string `json:"display"`
	Expression string `json:"expression"`
	IsError    bool   `json:"is_error"`
	PendingOp  string `json:"pending_op,omitempty"`
}
