package errors

import "github.com/mark3labs/mcp-go/mcp"

// ErrMCPTool 将错误转换为 MCP 工具调用的失败结果
// MCP 约定工具级失败走 IsError 结果，而不是协议层错误
func ErrMCPTool(err error) *mcp.CallToolResult {
	return mcp.NewToolResultError(err.Error())
}
