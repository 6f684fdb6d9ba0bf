// services/agent_service.go
package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/fadhlanhapp/billsplit-backend/models"
	"github.com/fadhlanhapp/billsplit-backend/utils"
)

const agentSystemPrompt = `You are a helpful bill splitting assistant. You help users split bills and manage payments between participants.

AVAILABLE ACTIONS:
1. Split bill equally - Use the split_equally tool to divide the bill evenly among participants
2. Move items between participants - Use the move_item tool to transfer items
3. Show current bill status - Use the display_items tool
4. Custom percentage splits - Use the divide_items tool

IMPORTANT RULES:
- Always use complete email addresses from the participants list
- When users say "split equally", "divide evenly", or similar phrases, use the split_equally tool
- Only reference participant emails and item ids present in the current bill
- Be conversational and helpful in your responses
- Explain what you're doing in natural language`

// AgentService runs the conversational loop: the model picks which of
// the four bill operations to invoke and with what arguments; it never
// computes money itself. After any mutating tool call the participant
// totals are reconciled against the nett amount.
type AgentService struct {
	store      BillStore
	allocation *AllocationService
	transfer   *TransferService
	reconciler *ReconcileService
}

// NewAgentService creates a new agent service
func NewAgentService(store BillStore, allocation *AllocationService, transfer *TransferService, reconciler *ReconcileService) *AgentService {
	return &AgentService{
		store:      store,
		allocation: allocation,
		transfer:   transfer,
		reconciler: reconciler,
	}
}

type agentTool struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	InputSchema json.RawMessage `json:"input_schema"`
}

type agentMessage struct {
	Role    string       `json:"role"`
	Content []agentBlock `json:"content"`
}

type agentBlock struct {
	Type      string          `json:"type"`
	Text      string          `json:"text,omitempty"`
	ID        string          `json:"id,omitempty"`
	Name      string          `json:"name,omitempty"`
	Input     json.RawMessage `json:"input,omitempty"`
	ToolUseID string          `json:"tool_use_id,omitempty"`
	Content   string          `json:"content,omitempty"`
}

type agentResponse struct {
	Content    []agentBlock `json:"content"`
	StopReason string       `json:"stop_reason"`
}

var agentTools = []agentTool{
	{
		Name:        "display_items",
		Description: "List all items in the bill.",
		InputSchema: json.RawMessage(`{"type":"object","properties":{}}`),
	},
	{
		Name:        "move_item",
		Description: "Move items from one participant to another and update balances.",
		InputSchema: json.RawMessage(`{"type":"object","properties":{"source_email":{"type":"string"},"destination_email":{"type":"string"},"item_ids":{"type":"array","items":{"type":"integer"}}},"required":["source_email","destination_email","item_ids"]}`),
	},
	{
		Name:        "divide_items",
		Description: "Divide items among participants based on a percentage distribution, format 'email1:XX%,email2:YY%'.",
		InputSchema: json.RawMessage(`{"type":"object","properties":{"percentages":{"type":"string"}},"required":["percentages"]}`),
	},
	{
		Name:        "split_equally",
		Description: "Split the bill equally among the specified number of participants. 0 means all participants.",
		InputSchema: json.RawMessage(`{"type":"object","properties":{"num_ways":{"type":"integer"}}}`),
	},
}

// Chat sends one natural-language request through the tool loop and
// returns the agent's reply plus the resulting bill state.
func (s *AgentService) Chat(billID, message string) (string, *models.Bill, error) {
	bill, err := s.store.GetBill(billID)
	if err != nil {
		return "", nil, err
	}

	system := agentSystemPrompt + formatParticipantContext(bill)
	messages := []agentMessage{
		{Role: "user", Content: []agentBlock{{Type: "text", Text: message}}},
	}

	var reply strings.Builder

	// Bounded loop; each round trip either ends the turn or executes
	// requested tool calls
	for turn := 0; turn < 8; turn++ {
		resp, err := s.invokeModel(system, messages)
		if err != nil {
			return "", bill, err
		}

		var results []agentBlock
		for _, block := range resp.Content {
			switch block.Type {
			case "text":
				if reply.Len() > 0 {
					reply.WriteString("\n")
				}
				reply.WriteString(block.Text)
			case "tool_use":
				output := s.executeTool(bill, block.Name, block.Input)
				results = append(results, agentBlock{
					Type:      "tool_result",
					ToolUseID: block.ID,
					Content:   output,
				})
			}
		}

		if resp.StopReason != "tool_use" || len(results) == 0 {
			break
		}

		messages = append(messages,
			agentMessage{Role: "assistant", Content: resp.Content},
			agentMessage{Role: "user", Content: results},
		)
	}

	return reply.String(), bill, nil
}

// executeTool dispatches one tool call against the bill engines. Errors
// go back to the model as plain text so it can recover or explain.
func (s *AgentService) executeTool(bill *models.Bill, name string, input json.RawMessage) string {
	switch name {
	case "display_items":
		lines := make([]string, 0, len(bill.Items))
		for _, item := range bill.Items {
			lines = append(lines, fmt.Sprintf("%s (x%d): $%.2f", item.Name, item.Quantity, item.Price))
		}
		return strings.Join(lines, "\n")

	case "move_item":
		var args struct {
			SourceEmail      string `json:"source_email"`
			DestinationEmail string `json:"destination_email"`
			ItemIDs          []int  `json:"item_ids"`
		}
		if err := json.Unmarshal(input, &args); err != nil {
			return fmt.Sprintf("Error moving items: %v", err)
		}
		source, dest, err := s.transfer.MoveItems(bill, args.SourceEmail, args.DestinationEmail, args.ItemIDs)
		if err != nil {
			return fmt.Sprintf("Error moving items: %v", err)
		}
		total, err := s.reconciler.ReconcileTotals(bill)
		if err != nil {
			return fmt.Sprintf("Error reconciling totals: %v", err)
		}
		return fmt.Sprintf("Successfully moved items %v from %s to %s. Participant totals now sum to $%.2f.",
			args.ItemIDs, source, dest, total)

	case "divide_items":
		var args struct {
			Percentages string `json:"percentages"`
		}
		if err := json.Unmarshal(input, &args); err != nil {
			return fmt.Sprintf("Error dividing items: %v", err)
		}
		assignments, err := utils.ParsePercentages(args.Percentages)
		if err != nil {
			return fmt.Sprintf("Error dividing items: %v", err)
		}
		if err := s.allocation.DivideByPercentages(bill, assignments); err != nil {
			return fmt.Sprintf("Error dividing items: %v", err)
		}
		if _, err := s.reconciler.ReconcileTotals(bill); err != nil {
			return fmt.Sprintf("Error reconciling totals: %v", err)
		}
		return formatBalances("Bill divided by percentages:", bill)

	case "split_equally":
		var args struct {
			NumWays int `json:"num_ways"`
		}
		if err := json.Unmarshal(input, &args); err != nil {
			return fmt.Sprintf("Error splitting bill: %v", err)
		}
		if err := s.allocation.SplitEqually(bill, args.NumWays); err != nil {
			return fmt.Sprintf("Error splitting bill: %v", err)
		}
		if _, err := s.reconciler.ReconcileTotals(bill); err != nil {
			return fmt.Sprintf("Error reconciling totals: %v", err)
		}
		return formatBalances("Bill split equally:", bill)

	default:
		return fmt.Sprintf("Unknown tool %q", name)
	}
}

// formatParticipantContext lists the valid emails and item ids so the
// model never invents identifiers.
func formatParticipantContext(bill *models.Bill) string {
	var b strings.Builder
	b.WriteString("\n\nVALID EMAIL ADDRESSES:\n")
	for _, p := range bill.Participants {
		fmt.Fprintf(&b, "- %s\n", p.Email)
	}

	ids := make([]int, 0, len(bill.Items))
	for _, item := range bill.Items {
		ids = append(ids, item.ID)
	}
	sort.Ints(ids)

	b.WriteString("\nVALID ITEMS:\n")
	for _, id := range ids {
		fmt.Fprintf(&b, "ID: %d\n", id)
	}
	return b.String()
}

func formatBalances(header string, bill *models.Bill) string {
	var b strings.Builder
	b.WriteString(header)
	for _, p := range bill.Participants {
		fmt.Fprintf(&b, "\n%s: $%.2f", p.Email, p.TotalPaid)
		for _, share := range p.ItemsPaid {
			fmt.Fprintf(&b, "\n  - Item %d: %g%% = $%.2f", share.ID, share.Percentage, share.Value)
		}
	}
	return b.String()
}

// invokeModel performs one Claude messages call with the tool set
func (s *AgentService) invokeModel(system string, messages []agentMessage) (*agentResponse, error) {
	apiKey := os.Getenv("ANTHROPIC_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("ANTHROPIC_API_KEY environment variable not set")
	}

	requestBody := map[string]interface{}{
		"model":      "claude-sonnet-4-20250514",
		"max_tokens": 2000,
		"system":     system,
		"tools":      agentTools,
		"messages":   messages,
	}

	jsonBody, err := json.Marshal(requestBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal agent request: %v", err)
	}

	req, err := http.NewRequest("POST", claudeURL, bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create agent request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", apiKey)
	req.Header.Set("anthropic-version", "2023-06-01")

	client := &http.Client{Timeout: 60 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send agent request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("agent model returned non-200 status: %d - %s", resp.StatusCode, string(bodyBytes))
	}

	var parsed agentResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode agent response: %v", err)
	}
	return &parsed, nil
}
