package misc

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/SolAgent-Network/agent_layer/internal/actions"
	"github.com/SolAgent-Network/agent_layer/internal/agent"
	"github.com/SolAgent-Network/agent_layer/internal/httputil"
)

const snsProxyURL = "https://sns-sdk-proxy.bonfida.workers.dev"

// ResolveDomainAction resolves a .sol domain to its wallet address.
type ResolveDomainAction struct {
	meta    actions.Metadata
	http    *httputil.Client
	baseURL string
}

// NewResolveDomainAction constructs the RESOLVE_SOL_DOMAIN operation.
func NewResolveDomainAction(client *httputil.Client) *ResolveDomainAction {
	if client == nil {
		client = httputil.NewClient(0)
	}
	return &ResolveDomainAction{
		http:    client,
		baseURL: snsProxyURL,
		meta: actions.Metadata{
			Name: "RESOLVE_SOL_DOMAIN",
			Similes: []string{
				"resolve domain",
				"lookup .sol name",
				"who owns this domain",
			},
			Description: "Resolve a .sol domain to its corresponding Solana wallet address using Bonfida Name Service",
			Examples: []actions.Example{
				{
					Input: map[string]any{"domain": "bonfida.sol"},
					Output: map[string]any{
						"status": "success",
						"owner":  "HKKp49qGWXd639QsuH7JiLijfVW5UtCVY4s1n2HANwEA",
					},
					Explanation: "Resolve the bonfida.sol domain",
				},
			},
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"domain": map[string]any{
						"type":        "string",
						"description": "Domain name to resolve, with or without the .sol suffix",
					},
				},
				"required":             []string{"domain"},
				"additionalProperties": false,
			},
		},
	}
}

func (a *ResolveDomainAction) Metadata() actions.Metadata { return a.meta }

func (a *ResolveDomainAction) Execute(ctx context.Context, ag *agent.Agent, input json.RawMessage) (actions.Result, error) {
	var in struct {
		Domain string `json:"domain"`
	}
	if err := actions.DecodeInput(input, &in); err != nil {
		return nil, err
	}
	if in.Domain == "" {
		return nil, actions.InvalidInputf("domain is required")
	}
	name := strings.TrimSuffix(in.Domain, ".sol")

	resp, err := a.http.GetJSON(ctx, a.baseURL+"/resolve/"+name, nil)
	if err != nil {
		return actions.Errorf("domain resolution failed: %v", err), nil
	}
	owner := resp.Get("result").String()
	if owner == "" {
		return actions.Errorf("domain %s.sol not found", name), nil
	}
	return actions.Success(actions.Result{
		"domain":  name + ".sol",
		"owner":   owner,
		"message": fmt.Sprintf("Successfully resolved %s.sol", name),
	}), nil
}

// DomainTLDsAction lists the domain TLDs supported on Solana.
type DomainTLDsAction struct {
	meta actions.Metadata
}

// NewDomainTLDsAction constructs the GET_ALL_DOMAINS_TLDS operation.
func NewDomainTLDsAction() *DomainTLDsAction {
	return &DomainTLDsAction{
		meta: actions.Metadata{
			Name: "GET_ALL_DOMAINS_TLDS",
			Similes: []string{
				"domain tlds",
				"all tlds",
				"supported domain suffixes",
			},
			Description: "List the domain TLDs supported on Solana",
			Examples: []actions.Example{
				{
					Input: map[string]any{},
					Output: map[string]any{
						"status": "success",
						"tlds":   []any{".sol", ".abc", ".bonk"},
					},
					Explanation: "Get all supported TLDs",
				},
			},
			InputSchema: map[string]any{
				"type":                 "object",
				"properties":           map[string]any{},
				"additionalProperties": false,
			},
		},
	}
}

func (a *DomainTLDsAction) Metadata() actions.Metadata { return a.meta }

func (a *DomainTLDsAction) Execute(ctx context.Context, ag *agent.Agent, input json.RawMessage) (actions.Result, error) {
	if err := actions.DecodeInput(input, &struct{}{}); err != nil {
		return nil, err
	}
	return actions.Success(actions.Result{
		"tlds": []string{".sol", ".abc", ".backpack", ".bonk", ".poor", ".glow"},
		"note": "Use RESOLVE_SOL_DOMAIN to resolve .sol domains",
	}), nil
}
