package main

import (
	"encoding/json"
	"fmt"
	"math/big"
	"strings"

	"github.com/spf13/cobra"

	"github.com/krazyTry/invariant-go/invariant"
	"github.com/krazyTry/invariant-go/invariant/shared"
)

func newSwapCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "swap",
		Short: "Simulate a swap on the snapshot pool",
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := setup(cmd)
			if err != nil {
				return err
			}
			defer e.logger.Sync()

			xToY, _ := cmd.Flags().GetBool("x-to-y")
			byAmountIn, _ := cmd.Flags().GetBool("by-amount-in")
			amount, err := bigFlag(cmd, "amount")
			if err != nil {
				return err
			}
			req := invariant.SwapRequest{XToY: xToY, ByAmountIn: byAmountIn, Amount: amount}
			if raw, _ := cmd.Flags().GetString("price-limit"); raw != "" {
				if req.PriceLimit, err = parseBig(raw); err != nil {
					return fmt.Errorf("price-limit: %w", err)
				}
			}

			result, err := e.client.SwapQuote(e.snapshot, req)
			if err != nil {
				return err
			}
			return printJSON(cmd, result)
		},
	}
	cmd.Flags().Bool("x-to-y", false, "swap token X for token Y")
	cmd.Flags().Bool("by-amount-in", true, "amount is the input amount")
	cmd.Flags().String("amount", "", "swap amount")
	cmd.Flags().String("price-limit", "", "sqrt price limit on 10^24")
	return cmd
}

func newLadderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ladder",
		Short: "Simulate many swap amounts concurrently",
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := setup(cmd)
			if err != nil {
				return err
			}
			defer e.logger.Sync()

			xToY, _ := cmd.Flags().GetBool("x-to-y")
			byAmountIn, _ := cmd.Flags().GetBool("by-amount-in")
			raw, _ := cmd.Flags().GetStringSlice("amounts")
			if len(raw) == 0 {
				return fmt.Errorf("amounts are required")
			}
			amounts := make([]*big.Int, len(raw))
			for i, item := range raw {
				if amounts[i], err = parseBig(item); err != nil {
					return fmt.Errorf("amounts[%d]: %w", i, err)
				}
			}

			quotes, err := e.client.SwapLadder(cmd.Context(), e.snapshot, xToY, byAmountIn, amounts)
			if err != nil {
				return err
			}

			type row struct {
				invariant.LadderQuote
				Error string `json:"error,omitempty"`
			}
			rows := make([]row, len(quotes))
			for i, quote := range quotes {
				rows[i].LadderQuote = quote
				if quote.Err != nil {
					rows[i].Error = quote.Err.Error()
				}
			}
			return printJSON(cmd, rows)
		},
	}
	cmd.Flags().Bool("x-to-y", false, "swap token X for token Y")
	cmd.Flags().Bool("by-amount-in", true, "amounts are input amounts")
	cmd.Flags().StringSlice("amounts", nil, "swap amounts (comma-separated)")
	return cmd
}

func newPositionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "position",
		Short: "Find the swap that best fills a new position",
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := setup(cmd)
			if err != nil {
				return err
			}
			defer e.logger.Sync()

			lower, _ := cmd.Flags().GetInt32("lower")
			upper, _ := cmd.Flags().GetInt32("upper")
			amountX, err := bigFlag(cmd, "amount-x")
			if err != nil {
				return err
			}
			amountY, err := bigFlag(cmd, "amount-y")
			if err != nil {
				return err
			}

			position := shared.PositionRange{LowerTick: lower, UpperTick: upper}
			if raw, _ := cmd.Flags().GetString("known-price"); raw != "" {
				if position.KnownPrice, err = parseBig(raw); err != nil {
					return fmt.Errorf("known-price: %w", err)
				}
			}

			result, err := e.client.CreatePositionQuote(e.snapshot, amountX, amountY, position)
			if err != nil {
				return err
			}
			return printJSON(cmd, result)
		},
	}
	cmd.Flags().Int32("lower", 0, "lower tick of the position")
	cmd.Flags().Int32("upper", 0, "upper tick of the position")
	cmd.Flags().String("amount-x", "0", "token X available")
	cmd.Flags().String("amount-y", "0", "token Y available")
	cmd.Flags().String("known-price", "", "sqrt price of the target pool, empty for the snapshot pool")
	return cmd
}

func newTicksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ticks",
		Short: "List initialized ticks closest to the current tick",
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := setup(cmd)
			if err != nil {
				return err
			}
			defer e.logger.Sync()

			limit, _ := cmd.Flags().GetInt("limit")
			maxRange, _ := cmd.Flags().GetInt("range")
			raw, _ := cmd.Flags().GetString("direction")
			direction, err := parseDirection(raw)
			if err != nil {
				return err
			}

			ticks, err := e.client.ClosestTicks(e.snapshot, limit, maxRange, direction)
			if err != nil {
				return err
			}
			return printJSON(cmd, ticks)
		},
	}
	cmd.Flags().Int("limit", 10, "maximum number of ticks")
	cmd.Flags().Int("range", 0, "maximum slots scanned per side, 0 for unbounded")
	cmd.Flags().String("direction", "both", "scan direction (both, up, down)")
	return cmd
}

func newClaimCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "claim",
		Short: "Compute the fees claimable by a position",
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := setup(cmd)
			if err != nil {
				return err
			}
			defer e.logger.Sync()

			lower, _ := cmd.Flags().GetInt32("lower")
			upper, _ := cmd.Flags().GetInt32("upper")

			var position shared.PositionClaimData
			for _, field := range []struct {
				flag string
				dst  **big.Int
			}{
				{"liquidity", &position.Liquidity},
				{"fee-growth-inside-x", &position.FeeGrowthInsideX},
				{"fee-growth-inside-y", &position.FeeGrowthInsideY},
				{"tokens-owed-x", &position.TokensOwedX},
				{"tokens-owed-y", &position.TokensOwedY},
			} {
				if *field.dst, err = bigFlag(cmd, field.flag); err != nil {
					return err
				}
			}

			owed, err := e.client.ClaimQuote(e.snapshot, position, lower, upper)
			if err != nil {
				return err
			}
			return printJSON(cmd, owed)
		},
	}
	cmd.Flags().Int32("lower", 0, "lower tick of the position")
	cmd.Flags().Int32("upper", 0, "upper tick of the position")
	cmd.Flags().String("liquidity", "0", "position liquidity on 10^6")
	cmd.Flags().String("fee-growth-inside-x", "0", "position fee growth inside X")
	cmd.Flags().String("fee-growth-inside-y", "0", "position fee growth inside Y")
	cmd.Flags().String("tokens-owed-x", "0", "tokens owed X on 10^12")
	cmd.Flags().String("tokens-owed-y", "0", "tokens owed Y on 10^12")
	return cmd
}

func bigFlag(cmd *cobra.Command, name string) (*big.Int, error) {
	raw, _ := cmd.Flags().GetString(name)
	out, err := parseBig(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return out, nil
}

func parseBig(raw string) (*big.Int, error) {
	out, ok := new(big.Int).SetString(strings.TrimSpace(raw), 10)
	if !ok || out.Sign() < 0 {
		return nil, fmt.Errorf("invalid amount %q: %w", raw, shared.ErrInvalidArgument)
	}
	return out, nil
}

func parseDirection(raw string) (shared.Direction, error) {
	switch strings.ToLower(raw) {
	case "", "both":
		return shared.DirectionBoth, nil
	case "up":
		return shared.DirectionUp, nil
	case "down":
		return shared.DirectionDown, nil
	}
	return 0, fmt.Errorf("unknown direction %q", raw)
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
