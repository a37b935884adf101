package app

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/bobmcallan/xirr/internal/common"
	"github.com/bobmcallan/xirr/internal/interfaces"
	"github.com/bobmcallan/xirr/internal/models"
	"github.com/bobmcallan/xirr/internal/payload"
)

// handleGetVersion implements the get_version tool
func handleGetVersion() server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result := fmt.Sprintf("XIRR MCP Server\nVersion: %s\nBuild: %s\nCommit: %s\nStatus: OK",
			common.GetVersion(), common.GetBuild(), common.GetGitCommit())
		return textResult(result), nil
	}
}

// handleXIRR implements the xirr tool
func handleXIRR(svc interfaces.XIRRService, logger *common.Logger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var req payload.CalcRequest
		if err := payload.FromArguments(request.GetArguments(), &req); err != nil {
			return errorResult(fmt.Sprintf("Error: %v", err)), nil
		}
		src, err := req.Source()
		if err != nil {
			return errorResult(fmt.Sprintf("Error: %v", err)), nil
		}

		result, err := svc.Calculate(ctx, src, req.Options())
		if err != nil {
			logger.Debug().Err(err).Msg("xirr tool failed")
			return errorResult(fmt.Sprintf("XIRR error: %v", err)), nil
		}
		return textResult(formatXIRR(result)), nil
	}
}

// handleXNPV implements the xnpv tool
func handleXNPV(svc interfaces.XIRRService, logger *common.Logger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		rate := request.GetFloat("rate", math.NaN())
		if math.IsNaN(rate) {
			return errorResult("Error: rate parameter is required"), nil
		}

		var req payload.CalcRequest
		if err := payload.FromArguments(request.GetArguments(), &req); err != nil {
			return errorResult(fmt.Sprintf("Error: %v", err)), nil
		}
		src, err := req.Source()
		if err != nil {
			return errorResult(fmt.Sprintf("Error: %v", err)), nil
		}

		result, err := svc.NPV(ctx, src, rate, req.Options())
		if err != nil {
			logger.Debug().Err(err).Msg("xnpv tool failed")
			return errorResult(fmt.Sprintf("XNPV error: %v", err)), nil
		}
		return textResult(formatNPV(result)), nil
	}
}

func formatXIRR(r *models.XIRRResult) string {
	var sb strings.Builder
	sb.WriteString("# XIRR\n\n")
	sb.WriteString(fmt.Sprintf("**Rate:** %.4f%% (%.10f)\n", r.Rate*100, r.Rate))
	sb.WriteString(fmt.Sprintf("**Payments:** %d\n", r.Payments))
	sb.WriteString(fmt.Sprintf("**Period:** %s to %s\n", r.Start, r.End))
	sb.WriteString(fmt.Sprintf("**Invested:** %.2f\n", r.Outflow))
	sb.WriteString(fmt.Sprintf("**Returned:** %.2f\n", r.Inflow))
	sb.WriteString(fmt.Sprintf("**Day count:** %s\n", r.DayCount))
	return sb.String()
}

func formatNPV(r *models.NPVResult) string {
	var sb strings.Builder
	sb.WriteString("# XNPV\n\n")
	sb.WriteString(fmt.Sprintf("**NPV:** %.2f\n", r.NPV))
	sb.WriteString(fmt.Sprintf("**Rate:** %.4f%%\n", r.Rate*100))
	sb.WriteString(fmt.Sprintf("**Payments:** %d\n", r.Payments))
	sb.WriteString(fmt.Sprintf("**Discounted to:** %s\n", r.Start))
	sb.WriteString(fmt.Sprintf("**Day count:** %s\n", r.DayCount))
	return sb.String()
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent(text),
		},
	}
}

func errorResult(message string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent(message),
		},
		IsError: true,
	}
}
