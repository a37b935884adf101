package app

import "github.com/mark3labs/mcp-go/mcp"

const scheduleHelp = "Supply the schedule as one of: payments (object of date to amount, or array of " +
	"[date, amount] pairs), table ({columns, kinds}), series ({index, index_kind, values}), or " +
	"dates plus amounts arrays. Dates are YYYY-MM-DD, MM/DD/YYYY or YYYY-MM-DDTHH:MM:SS. " +
	"Negative amounts are outflows, positive amounts are inflows."

func createGetVersionTool() mcp.Tool {
	return mcp.NewTool("get_version",
		mcp.WithDescription("Get the xirr server version and status. Use this to verify connectivity."),
	)
}

// scheduleOptions are the arguments shared by every schedule-taking tool.
func scheduleOptions() []mcp.ToolOption {
	return []mcp.ToolOption{
		mcp.WithObject("payments",
			mcp.Description("Mapping of date to amount, e.g. {\"2020-01-01\": -1000, \"2021-01-01\": 1100}. An array of [date, amount] pairs is also accepted."),
		),
		mcp.WithArray("dates",
			mcp.Description("Payment dates, parallel to amounts"),
			mcp.WithStringItems(),
		),
		mcp.WithArray("amounts",
			mcp.Description("Payment amounts, parallel to dates"),
		),
		mcp.WithObject("table",
			mcp.Description("Two-column table: {\"columns\": [[dates], [amounts]], \"kinds\": [\"object\", \"decimal\"]}"),
		),
		mcp.WithObject("series",
			mcp.Description("Amounts indexed by date: {\"index\": [dates], \"index_kind\": \"object\", \"values\": [amounts]}"),
		),
		mcp.WithString("day_count",
			mcp.Description("Day count convention: ACT/365F (default), ACT/360 or ACT/365.25"),
		),
	}
}

func createXIRRTool() mcp.Tool {
	opts := append([]mcp.ToolOption{
		mcp.WithDescription("Compute the annualised internal rate of return (XIRR) of an irregularly dated cash-flow schedule. " + scheduleHelp),
		mcp.WithNumber("guess",
			mcp.Description("Starting rate for the solver (default 0.1)"),
		),
		mcp.WithBoolean("bisection_fallback",
			mcp.Description("Retry with bisection when Newton-Raphson fails (default false)"),
		),
	}, scheduleOptions()...)
	return mcp.NewTool("xirr", opts...)
}

func createXNPVTool() mcp.Tool {
	opts := append([]mcp.ToolOption{
		mcp.WithDescription("Compute the net present value (XNPV) of an irregularly dated cash-flow schedule at a fixed annual rate, discounted to the earliest payment date. " + scheduleHelp),
		mcp.WithNumber("rate",
			mcp.Required(),
			mcp.Description("Annual discount rate as a decimal, e.g. 0.08 for 8%"),
		),
	}, scheduleOptions()...)
	return mcp.NewTool("xnpv", opts...)
}
