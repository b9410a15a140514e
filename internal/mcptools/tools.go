// Package mcptools exposes the calculator operations as MCP tools.
package mcptools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"go.uber.org/zap"

	"go-chi-calculator/internal/calculator"
	"go-chi-calculator/internal/observability"
)

// OperationTool handles one calculator operation.
type OperationTool struct {
	op calculator.Operator
}

// NewOperationTool creates the tool for op.
func NewOperationTool(op calculator.Operator) *OperationTool {
	return &OperationTool{op: op}
}

// GetTool returns the MCP tool definition
func (t *OperationTool) GetTool() mcp.Tool {
	return mcp.NewTool(t.op.String(),
		mcp.WithDescription(description(t.op)+" "+operandNote),
		mcp.WithNumber("a", mcp.Required(), mcp.Description("First operand")),
		mcp.WithNumber("b", mcp.Required(), mcp.Description("Second operand")),
	)
}

// Handle processes the tool request
func (t *OperationTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	a, err := calculator.FromValue(mcp.ParseArgument(req, "a", nil))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("a: %v", err)), nil
	}
	b, err := calculator.FromValue(mcp.ParseArgument(req, "b", nil))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("b: %v", err)), nil
	}

	result, err := calculator.Evaluate(ctx, t.op, a, b)
	if err != nil {
		observability.Logger.Debug("mcp tool failed", zap.String("tool", t.op.String()), zap.Error(err))
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(result.String()), nil
}

// JSON numbers arrive as float64 with no trace of how they were written, so
// 2.0 and 2 are the same operand here.
const operandNote = `Integral operands such as 2.0 are treated as integers; pass a numeric string such as "2.0" to keep a float operand.`

func description(op calculator.Operator) string {
	switch op {
	case calculator.OpAdd:
		return "Add two numbers. The result is an integer when both operands are integers."
	case calculator.OpSubtract:
		return "Subtract b from a. The result is an integer when both operands are integers."
	case calculator.OpMultiply:
		return "Multiply two numbers. The result is an integer when both operands are integers."
	case calculator.OpDivide:
		return "Divide a by b. The result is always a float; dividing by zero is an error."
	default:
		return op.String()
	}
}
