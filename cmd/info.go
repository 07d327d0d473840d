package cmd

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"nltools/internal/language"
	"nltools/internal/logger"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Print the analysis service configuration as JSON",
	Long: `Print the resolved service configuration: the default provider and
processing chain, the listener state, the exclusion lists, and every
registered provider with its supported features.`,
	Args: cobra.NoArgs,
	RunE: runInfo,
}

type providerInfo struct {
	Name     string             `json:"name"`
	Features []language.Feature `json:"supportedFeatures"`
}

type serviceInfo struct {
	DefaultProviderName string         `json:"defaultProviderName"`
	DefaultChainName    string         `json:"defaultChainName"`
	ListenerEnabled     bool           `json:"listenerEnabled"`
	ExcludedFacets      []string       `json:"excludedFacets"`
	ExcludedDocTypes    []string       `json:"excludedDocTypes"`
	Providers           []providerInfo `json:"providers"`
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("info")

	service, cfg, err := newAnalysisService(cmd.Context(), log)
	if err != nil {
		return err
	}

	info := serviceInfo{
		DefaultProviderName: service.Registry().DefaultName(),
		DefaultChainName:    cfg.DefaultChain,
		ListenerEnabled:     cfg.ListenerEnabled,
		ExcludedFacets:      cfg.ExcludedFacets,
		ExcludedDocTypes:    cfg.ExcludedDocTypes,
	}
	for name, provider := range service.Registry().All() {
		info.Providers = append(info.Providers, providerInfo{
			Name:     name,
			Features: provider.SupportedFeatures(),
		})
	}
	sort.Slice(info.Providers, func(i, j int) bool {
		return info.Providers[i].Name < info.Providers[j].Name
	})

	output, err := json.MarshalIndent(info, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(output))
	return nil
}
