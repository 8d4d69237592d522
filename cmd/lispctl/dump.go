package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/lispkit/lispkit/lisp"
	"github.com/lispkit/lispkit/lisp/alloc"
)

var (
	dumpCells int
	dumpSlots bool
)

func init() {
	cmd := newDumpCmd()
	cmd.Flags().IntVar(&dumpCells, "cells", 150, "Cells to cons before dumping")
	cmd.Flags().BoolVar(&dumpSlots, "slots", false, "Also list every slot")
	rootCmd.AddCommand(cmd)
}

func newDumpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dump",
		Short: "Render the block chain and slot states",
		Long: `The dump command conses a sample workload, reclaims a portion of it,
and renders each block of the chain with per-slot state counts.

Example:
  lispctl dump --cells 250 --slots`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDump()
		},
	}
}

func runDump() error {
	h := alloc.New(nil)

	// Sample workload: a list spine with every third cell reclaimed.
	var refs []lisp.Ref
	for i := 0; i < dumpCells; i++ {
		v, err := h.Cons(lisp.MakeInt(int64(i)), lisp.Nil)
		if err != nil {
			return err
		}
		refs = append(refs, v.Ref())
	}
	for i := 0; i < len(refs); i += 3 {
		if err := h.Reclaim(refs[i]); err != nil {
			return err
		}
	}

	st := h.Stats()
	fmt.Println(title("Heap"))
	fmt.Println(kv("blocks", "%d", st.Blocks))
	fmt.Println(kv("heap bytes", "%d", st.HeapBytes))
	fmt.Println(kv("free conses", "%d", st.FreeConses))
	fmt.Println(kv("consing since gc", "%d", st.ConsingSinceGC))

	bi := h.Blocks()
	for {
		b, err := bi.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}

		live, free := 0, 0
		var slotLines []string
		si := b.Slots()
		for {
			s, sErr := si.Next()
			if errors.Is(sErr, io.EOF) {
				break
			}
			if sErr != nil {
				return sErr
			}
			if s.Live {
				live++
			} else {
				free++
			}
			if dumpSlots {
				state := "free"
				if s.Live {
					state = fmt.Sprintf("live car=%s cdr=%s", s.Car, s.Cdr)
				}
				slotLines = append(slotLines, fmt.Sprintf("    %#06x %s", uint32(s.Ref), state))
			}
		}

		kind, _ := h.FindKind(b.Base())
		fmt.Println(title(fmt.Sprintf("Block base=%#06x", uint32(b.Base()))))
		fmt.Println(kv("kind", "%s", kind))
		fmt.Println(kv("slots", "%d", b.Len()))
		fmt.Println(kv("live/free", "%d/%d", live, free))
		for _, line := range slotLines {
			fmt.Println(line)
		}
	}
	return nil
}
