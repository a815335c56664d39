// Package advisor implements the optional AI assistant: a single Gemini
// persona, "Thomas", grounded in the local portfolio through a small
// function library. It requires a GEMINI_API_KEY and is entirely outside the
// simulation core.
package advisor

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"google.golang.org/genai"
)

const model = "gemini-2.5-pro"

// Advisor runs the interactive chat session with the Thomas persona.
type Advisor struct {
	w      io.Writer
	r      *bufio.Reader
	expert *Expert
}

// New creates an Advisor writing to 'w' (e.g. os.Stdout) and reading user
// input from 'r' (e.g. os.Stdin).
func New(w io.Writer, r io.Reader, expert *Expert) *Advisor {
	return &Advisor{
		w:      w,
		r:      bufio.NewReader(r),
		expert: expert,
	}
}

const prompt = "thomas> "

// Run starts the interactive REPL session. Initial prompts are consumed
// before reading from the user; "bye" or EOF ends the session.
func (a *Advisor) Run(ctx context.Context, client *genai.Client, prompts ...string) error {
	if err := a.expert.Start(ctx, client); err != nil {
		return err
	}

	fmt.Fprintln(a.w, "Welcome to the Thomas advisor. Type 'bye' to exit.")

	// REPL loop
	for {
		fmt.Fprint(a.w, prompt)
		var input string

		// Flush prompts from the list and then ask the user.
		if len(prompts) > 0 {
			input, prompts = prompts[0], prompts[1:]
			input = strings.TrimSpace(input)
			if input == "" {
				continue
			}
			fmt.Fprintln(a.w, input)
		} else {
			var err error
			input, err = a.r.ReadString('\n')
			if err != nil {
				if err == io.EOF {
					return nil // Clean exit on Ctrl+D
				}
				return err
			}
		}

		if strings.TrimSpace(input) == "bye" {
			return nil
		}

		content, err := a.expert.Ask(ctx, &genai.Part{Text: input})
		if err != nil {
			return err
		}
		fmt.Fprintln(a.w, content.Parts[0].Text)
	}
}

// Expert is a chat with one persona and its function library.
type Expert struct {
	Name    string
	Config  *genai.GenerateContentConfig
	Library Library
	chat    *genai.Chat
}

// Start opens the chat session on the client.
func (e *Expert) Start(ctx context.Context, client *genai.Client) error {
	chat, err := client.Chats.Create(ctx, model, e.Config, nil)
	if err != nil {
		return err
	}
	e.chat = chat
	return nil
}

// Ask sends the parts and resolves function calls until the expert comes
// back with a real answer.
func (e *Expert) Ask(ctx context.Context, parts ...*genai.Part) (*genai.Content, error) {
	resp, err := e.chat.Send(ctx, parts...)
	if err != nil {
		return nil, err
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("no response from %s", e.Name)
	}
	part0 := resp.Candidates[0].Content.Parts[0]
	if part0.FunctionCall != nil {
		if e.Library == nil {
			return nil, fmt.Errorf("%s doesn't know how to make function calls", e.Name)
		}

		// Make the callback. Errors travel inside the response so the model
		// can react to them.
		fresp := e.Library(ctx, part0.FunctionCall)

		// Ask again with the response it asked for, until a real answer.
		return e.Ask(ctx, &genai.Part{FunctionResponse: fresp})
	}
	return resp.Candidates[0].Content, nil
}
