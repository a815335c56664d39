package advisor

import (
	"context"
	"fmt"
	"os"

	"github.com/skimscoop/thomas"
	"github.com/skimscoop/thomas/docs"
	"github.com/skimscoop/thomas/renderer"
	"google.golang.org/genai"
)

// NewThomas builds the Thomas persona over a local portfolio CSV and cash
// balance. The persona can read the portfolio, run simulations on it, and
// look up the user documentation; it never changes any file.
func NewThomas(portfolioPath string, cash float64) *Expert {
	lib := []Function{
		portfolioFunc(portfolioPath),
		simulateFunc(portfolioPath, cash),
		topicFunc(),
	}

	return &Expert{
		Name: "Thomas",
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclarations(lib)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			You are Thomas, a friendly income-investing coach built around the
			skim/scoop method: sell positions trading above their cost basis to
			lock profit ("skim"), buy small fixed-dollar amounts of positions
			trading below their basis to lower the average cost ("scoop").

			You have tools to read the user's current portfolio, to run a
			skim/scoop simulation over it, and to look up the documentation of
			the method and the file formats. Ground every claim about the
			user's holdings in the Portfolio tool, and every recommendation in
			an actual Simulate run; never invent numbers.

			Everything is a simulation. You never place orders and you say so
			when the user asks you to trade.
		`}}},
		},
		Library: NewLibrary(lib),
	}
}

func portfolioFunc(path string) Function {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name:        "Portfolio",
			Description: "Portfolio returns the user's current holdings: shares, cost basis, price, dividend yield and protected core shares per symbol.",
			Parameters: &genai.Schema{
				Type:       genai.TypeObject,
				Properties: map[string]*genai.Schema{},
			},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown table of the user's positions.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			positions, err := readPortfolio(path)
			if err != nil {
				return errorResponse(id, "Portfolio", err)
			}
			return textResponse(id, "Portfolio", renderer.PortfolioMarkdown(positions))
		},
	}
}

func simulateFunc(path string, cash float64) Function {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name: "Simulate",
			Description: `Simulate runs one skim/scoop pass over the user's portfolio and returns the full report:
			action log, portfolio after, and the plain-English summary. Nothing is persisted and no order is placed.`,
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"cash": {
						Type:        genai.TypeNumber,
						Description: fmt.Sprintf("Available cash balance in dollars. Defaults to the user's configured balance of %.2f.", cash),
					},
					"scoop_amount": {
						Type:        genai.TypeNumber,
						Description: "Dollar amount spent per scoop. Defaults to 10.",
					},
					"min_skim_proceeds": {
						Type:        genai.TypeNumber,
						Description: "Minimum proceeds required for a skim to execute. Defaults to 10.",
					},
				},
			},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "The markdown simulation report.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			positions, err := readPortfolio(path)
			if err != nil {
				return errorResponse(id, "Simulate", err)
			}
			opts := thomas.Options{}
			runCash := cash
			if v, ok := args["cash"].(float64); ok {
				runCash = v
			}
			if v, ok := args["scoop_amount"].(float64); ok {
				opts.ScoopAmount = thomas.USD(v)
			}
			if v, ok := args["min_skim_proceeds"].(float64); ok {
				opts.MinSkimProceeds = thomas.USD(v)
			}
			engine := thomas.NewEngine(positions, thomas.USD(runCash), opts)
			if err := engine.Evaluate(); err != nil {
				return errorResponse(id, "Simulate", err)
			}
			return textResponse(id, "Simulate", renderer.ReportMarkdown(engine.Report()))
		},
	}
}

func topicFunc() Function {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name:        "Topic",
			Description: "Topic returns the user documentation of a topic. Use topic 'readme' for the list of topics, or '*' for everything.",
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"name": {
						Type:        genai.TypeString,
						Description: "The topic name.",
					},
				},
				Required: []string{"name"},
			},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "The markdown documentation of the topic.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			name, ok := args["name"].(string)
			if !ok {
				return errorResponse(id, "Topic", fmt.Errorf("invalid type %T for name, expected string", args["name"]))
			}
			content, err := docs.GetTopic(name)
			if err != nil {
				return errorResponse(id, "Topic", err)
			}
			return textResponse(id, "Topic", content)
		},
	}
}

func readPortfolio(path string) ([]thomas.Position, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open portfolio %q: %w", path, err)
	}
	defer f.Close()
	return thomas.ReadPortfolio(f)
}
