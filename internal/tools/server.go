// internal/tools/server.go
package tools

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/garcj88/supplychain-assistant/internal/repository"
	"github.com/garcj88/supplychain-assistant/internal/service"
	"github.com/rs/zerolog/log"
)

// JSONRPCRequest represents a standard MCP/JSON-RPC request.
type JSONRPCRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      interface{}     `json:"id,omitempty"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// JSONRPCResponse represents a standard MCP/JSON-RPC response.
type JSONRPCResponse struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      interface{} `json:"id"`
	Result  interface{} `json:"result,omitempty"`
	Error   interface{} `json:"error,omitempty"`
}

// Server exposes the supply-chain core as callable tools for the agent
// runtime. Every tool returns structured JSON or a plain message; domain
// conditions (missing record, no data) come back as messages, never as
// protocol failures.
type Server struct {
	repo      repository.DailyRecordRepository
	inventory *service.InventoryService
	forecast  *service.ForecastService
	generator *service.GeneratorService
	summary   *service.SummaryService

	in  io.Reader
	out io.Writer
}

// NewServer creates a new tool server over stdio.
func NewServer(
	repo repository.DailyRecordRepository,
	inventory *service.InventoryService,
	forecast *service.ForecastService,
	generator *service.GeneratorService,
	summary *service.SummaryService,
) *Server {
	return &Server{
		repo:      repo,
		inventory: inventory,
		forecast:  forecast,
		generator: generator,
		summary:   summary,
		in:        os.Stdin,
		out:       os.Stdout,
	}
}

// Serve starts the JSON-RPC loop over Stdio.
func (s *Server) Serve() error {
	reader := bufio.NewReader(s.in)
	for {
		line, err := reader.ReadBytes('\n')
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}

		var req JSONRPCRequest
		if err := json.Unmarshal(line, &req); err != nil {
			log.Error().Err(err).Msg("Failed to unmarshal request")
			continue
		}

		s.handleRequest(req)
	}
}

func (s *Server) handleRequest(req JSONRPCRequest) {
	var result interface{}
	var errRes interface{}

	switch req.Method {
	case "initialize":
		result = map[string]interface{}{
			"protocolVersion": "2024-11-05",
			"capabilities":    map[string]interface{}{},
			"serverInfo": map[string]interface{}{
				"name":    "supplychain-assistant",
				"version": "0.1.0",
			},
		}
	case "tools/list":
		result = s.listTools()
	case "tools/call":
		result, errRes = s.callTool(req.Params)
	default:
		errRes = map[string]interface{}{
			"code":    -32601,
			"message": fmt.Sprintf("Method %s not found", req.Method),
		}
	}

	resp := JSONRPCResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result:  result,
		Error:   errRes,
	}

	out, _ := json.Marshal(resp)
	fmt.Fprintf(s.out, "%s\n", out)
}

func (s *Server) callTool(params json.RawMessage) (interface{}, interface{}) {
	var call struct {
		Name      string                 `json:"name"`
		Arguments map[string]interface{} `json:"arguments"`
	}
	if err := json.Unmarshal(params, &call); err != nil {
		return nil, map[string]interface{}{"code": -32602, "message": "Invalid params"}
	}

	ctx := context.Background()
	args := call.Arguments

	var data interface{}
	var err error

	switch call.Name {
	case "get_daily_data":
		data, err = s.handleGetDailyData(ctx, args)
	case "update_demand":
		data, err = s.handleUpdateDemand(ctx, args)
	case "update_production_plan":
		data, err = s.handleUpdateProductionPlan(ctx, args)
	case "calculate_demand_forecast":
		data, err = s.handleCalculateDemandForecast(ctx, args)
	case "clear_all_forecast":
		data, err = s.handleClearAllForecast(ctx)
	case "clear_forecast_range":
		data, err = s.handleClearForecastRange(ctx, args)
	case "generate_future_data":
		data, err = s.handleGenerateFutureData(ctx, args)
	case "increase_all_demand":
		data, err = s.handleIncreaseAllDemand(ctx, args)
	case "delete_all_data":
		data, err = s.handleDeleteAllData(ctx)
	case "get_stockouts":
		data, err = s.handleGetStockouts(ctx)
	case "propose_production_plan_for_stockouts":
		data, err = s.handleProposeProductionPlan(ctx)
	case "get_production_summary":
		data, err = s.summary.Production(ctx)
	case "get_demand_summary":
		data, err = s.summary.Demand(ctx)
	case "get_inventory_summary":
		data, err = s.summary.Inventory(ctx)
	default:
		return nil, map[string]interface{}{"code": -32601, "message": "Tool not found"}
	}

	if err != nil {
		return nil, map[string]interface{}{"code": -32000, "message": err.Error()}
	}

	return map[string]interface{}{
		"content": []interface{}{
			map[string]interface{}{
				"type": "text",
				"text": s.formatResult(data),
			},
		},
	}, nil
}

func (s *Server) formatResult(data interface{}) string {
	if msg, ok := data.(string); ok {
		return msg
	}
	out, _ := json.MarshalIndent(data, "", "  ")
	return string(out)
}
