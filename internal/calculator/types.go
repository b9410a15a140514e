package calculator

// CalcRequest is the JSON body for binary operations (add, subtract, multiply, divide).
// Operands may be JSON numbers or numeric strings; booleans are rejected.
type CalcRequest struct {
	A Number `json:"a"`
	B Number `json:"b"`
}

// CalcResponse is the JSON response for the binary operation endpoints.
type CalcResponse struct {
	Operation string `json:"operation"`
	A         Number `json:"a"`
	B         Number `json:"b"`
	Result    Number `json:"result"`
	Kind      string `json:"kind"`    // "int" or "float"
	Display   string `json:"display"` // calculator display form of Result
}

// ChainStep describes a single step in a chained calculation.
type ChainStep struct {
	Op    string `json:"op"`    // word or symbol token, e.g. "add" or "+"
	Value Number `json:"value"` // the operand applied with the running total
}

// ChainRequest is the JSON body for POST /calculator/chain.
type ChainRequest struct {
	Initial Number      `json:"initial"` // starting value
	Steps   []ChainStep `json:"steps"`
}

// ChainResponse is the JSON response for POST /calculator/chain.
type ChainResponse struct {
	Initial Number        `json:"initial"`
	Steps   []ChainResult `json:"steps"`
	Result  Number        `json:"result"`
	Display string        `json:"display"`
}

// ChainResult records one executed step.
type ChainResult struct {
	Op     string `json:"op"`
	Value  Number `json:"value"`
	Result Number `json:"result"`
}
