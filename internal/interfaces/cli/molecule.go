package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// newParseCmd builds `chemgraph parse <smiles>`: full record with canonical
// form, fingerprint, and descriptors.
func newParseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "parse <smiles>",
		Short: "Parse a SMILES string and describe the molecule",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			dto, err := cliCtx.Service.Describe(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if strings.ToLower(cliCtx.OutputFormat) == "json" {
				return printJSON(cmd, dto)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "canonical: %s\n", dto.CanonicalSMILES)
			fmt.Fprintf(out, "formula:   %s\n", dto.Properties.Formula)
			fmt.Fprintf(out, "atoms:     %d\n", dto.AtomCount)
			fmt.Fprintf(out, "bonds:     %d\n", dto.BondCount)
			fmt.Fprintf(out, "weight:    %.2f\n", dto.Properties.MolecularWeight)
			return nil
		},
	}
}

// newValidateCmd builds `chemgraph validate <smiles>`: exits non-zero on an
// invalid input and reports the error offset.
func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <smiles>",
		Short: "Check whether a SMILES string parses cleanly",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			result := cliCtx.Service.Validate(cmd.Context(), args[0])
			if strings.ToLower(cliCtx.OutputFormat) == "json" {
				if err := printJSON(cmd, result); err != nil {
					return err
				}
			} else if result.Valid {
				fmt.Fprintln(cmd.OutOrStdout(), "valid")
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "invalid: [%s] %s\n", result.Error.Code, result.Error.Message)
			}
			if !result.Valid {
				return fmt.Errorf("invalid SMILES")
			}
			return nil
		},
	}
}

// newCanonCmd builds `chemgraph canon <smiles>`.
func newCanonCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "canon <smiles>",
		Short: "Print the canonical SMILES form",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			canonical, err := cliCtx.Service.Canonicalize(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return PrintResult(cmd, canonical)
		},
	}
}

// newRingsCmd builds `chemgraph rings <smiles>`.
func newRingsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rings <smiles>",
		Short: "List perceived rings with aromaticity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			rings, err := cliCtx.Service.Rings(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if strings.ToLower(cliCtx.OutputFormat) == "json" {
				return printJSON(cmd, rings)
			}
			out := cmd.OutOrStdout()
			if len(rings) == 0 {
				fmt.Fprintln(out, "no rings")
				return nil
			}
			for i, r := range rings {
				kind := "aliphatic"
				if r.Aromatic {
					kind = "aromatic"
				}
				fmt.Fprintf(out, "ring %d: size=%d %s atoms=%v\n", i+1, r.Size, kind, r.Atoms)
			}
			return nil
		},
	}
}

// newMatchCmd builds `chemgraph match <target> <pattern>`.
func newMatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "match <target-smiles> <pattern-smiles>",
		Short: "Test whether a substructure pattern occurs in a molecule",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			result, err := cliCtx.Service.Match(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			if strings.ToLower(cliCtx.OutputFormat) == "json" {
				return printJSON(cmd, result)
			}
			if result.Found {
				fmt.Fprintf(cmd.OutOrStdout(), "match: atoms %v\n", result.AtomMapping)
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "no match")
			}
			return nil
		},
	}
}

// newSimCmd builds `chemgraph sim <a> <b>`.
func newSimCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sim <smiles-a> <smiles-b>",
		Short: "Compute Tanimoto similarity between two molecules",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			result, err := cliCtx.Service.Similarity(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			if strings.ToLower(cliCtx.OutputFormat) == "json" {
				return printJSON(cmd, result)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%.4f\n", result.Similarity)
			return nil
		},
	}
}

// newPropsCmd builds `chemgraph props <smiles>`.
func newPropsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "props <smiles>",
		Short: "Compute physicochemical descriptors",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			props, err := cliCtx.Service.Properties(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if strings.ToLower(cliCtx.OutputFormat) == "json" {
				return printJSON(cmd, props)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "formula:          %s\n", props.Formula)
			fmt.Fprintf(out, "weight:           %.2f\n", props.MolecularWeight)
			fmt.Fprintf(out, "heavy atoms:      %d\n", props.HeavyAtoms)
			fmt.Fprintf(out, "rings:            %d (%d aromatic)\n", props.RingCount, props.AromaticRings)
			fmt.Fprintf(out, "H-bond donors:    %d\n", props.HBondDonors)
			fmt.Fprintf(out, "H-bond acceptors: %d\n", props.HBondAcceptors)
			fmt.Fprintf(out, "rotatable bonds:  %d\n", props.RotatableBonds)
			fmt.Fprintf(out, "logP:             %.2f\n", props.LogP)
			verdict := "pass"
			if !props.LipinskiPass {
				verdict = "fail"
			}
			fmt.Fprintf(out, "Lipinski:         %s (%d violations)\n", verdict, props.LipinskiViolations)
			return nil
		},
	}
}
