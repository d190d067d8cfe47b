package tools

func (s *Server) listTools() interface{} {
	return map[string]interface{}{
		"tools": []interface{}{
			map[string]interface{}{
				"name":        "get_daily_data",
				"description": "Get daily supply chain data (demand, production plan, forecast, inventory). Optionally restricted to a single date.",
				"inputSchema": map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"date": map[string]interface{}{"type": "string", "description": "Optional date (YYYY-MM-DD; legacy DD-MM-YYYY accepted)"},
					},
				},
			},
			map[string]interface{}{
				"name":        "update_demand",
				"description": "Update the demand for a specific date. Inventory is recalculated from that date onward.",
				"inputSchema": map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"date":  map[string]interface{}{"type": "string", "description": "Date of the record to update"},
						"value": map[string]interface{}{"type": "integer", "description": "New demand value"},
					},
					"required": []string{"date", "value"},
				},
			},
			map[string]interface{}{
				"name":        "update_production_plan",
				"description": "Update the production plan for a specific date. Inventory is recalculated from that date onward.",
				"inputSchema": map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"date":  map[string]interface{}{"type": "string", "description": "Date of the record to update"},
						"value": map[string]interface{}{"type": "integer", "description": "New production plan value"},
					},
					"required": []string{"date", "value"},
				},
			},
			map[string]interface{}{
				"name": "calculate_demand_forecast",
				"description": "Compute a demand forecast from historical demand using 'moving_average' or 'exponential_smoothing'. " +
					"Optionally anchor the history at start_date and persist the projected values into the forecast column of the following dates.",
				"inputSchema": map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"method":     map[string]interface{}{"type": "string", "enum": []string{"moving_average", "exponential_smoothing"}},
						"periods":    map[string]interface{}{"type": "integer", "description": "Number of days to forecast (default: 7)"},
						"start_date": map[string]interface{}{"type": "string", "description": "Optional anchor date; history after it is ignored"},
						"alpha":      map[string]interface{}{"type": "number", "description": "Smoothing level for exponential_smoothing (default: 0.5)"},
						"window":     map[string]interface{}{"type": "integer", "description": "Window size for moving_average (default: 3)"},
						"persist":    map[string]interface{}{"type": "boolean", "description": "If true, writes forecast values onto the dates after the anchor"},
					},
					"required": []string{"method"},
				},
			},
			map[string]interface{}{
				"name":        "clear_all_forecast",
				"description": "Clear the forecast column for every record.",
				"inputSchema": map[string]interface{}{
					"type":       "object",
					"properties": map[string]interface{}{},
				},
			},
			map[string]interface{}{
				"name":        "clear_forecast_range",
				"description": "Clear the forecast column for records with date >= start (and optionally date <= end).",
				"inputSchema": map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"start": map[string]interface{}{"type": "string", "description": "First date to clear"},
						"end":   map[string]interface{}{"type": "string", "description": "Optional last date to clear"},
					},
					"required": []string{"start"},
				},
			},
			map[string]interface{}{
				"name":        "generate_future_data",
				"description": "Generate consecutive daily records with random but consistent demand and production plan values, starting at start_date. Existing dates in the range are overwritten.",
				"inputSchema": map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"start_date": map[string]interface{}{"type": "string", "description": "First date to generate"},
						"days":       map[string]interface{}{"type": "integer", "description": "Number of days to generate"},
					},
					"required": []string{"start_date", "days"},
				},
			},
			map[string]interface{}{
				"name":        "increase_all_demand",
				"description": "Add a signed offset to every record's demand and recalculate inventory table-wide.",
				"inputSchema": map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"offset": map[string]interface{}{"type": "integer", "description": "Signed amount to add to every demand value"},
					},
					"required": []string{"offset"},
				},
			},
			map[string]interface{}{
				"name":        "delete_all_data",
				"description": "Delete every daily record. This cannot be undone.",
				"inputSchema": map[string]interface{}{
					"type":       "object",
					"properties": map[string]interface{}{},
				},
			},
			map[string]interface{}{
				"name":        "get_stockouts",
				"description": "List records whose inventory is at or below zero.",
				"inputSchema": map[string]interface{}{
					"type":       "object",
					"properties": map[string]interface{}{},
				},
			},
			map[string]interface{}{
				"name":        "propose_production_plan_for_stockouts",
				"description": "For each stocked-out date, propose a production plan equal to demand, bringing that day's resulting inventory to zero.",
				"inputSchema": map[string]interface{}{
					"type":       "object",
					"properties": map[string]interface{}{},
				},
			},
			map[string]interface{}{
				"name":        "get_production_summary",
				"description": "Summary statistics (average, maximum, minimum, total) of the production plan.",
				"inputSchema": map[string]interface{}{
					"type":       "object",
					"properties": map[string]interface{}{},
				},
			},
			map[string]interface{}{
				"name":        "get_demand_summary",
				"description": "Summary statistics (average, maximum, minimum, total) of demand.",
				"inputSchema": map[string]interface{}{
					"type":       "object",
					"properties": map[string]interface{}{},
				},
			},
			map[string]interface{}{
				"name":        "get_inventory_summary",
				"description": "Summary statistics (average, maximum, minimum) of inventory.",
				"inputSchema": map[string]interface{}{
					"type":       "object",
					"properties": map[string]interface{}{},
				},
			},
		},
	}
}
