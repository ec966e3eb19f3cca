package text_test

import (
	"fmt"

	"github.com/walteh/codestyle/pkg/text"
)

func ExampleEngine_Rewrite() {
	set, _ := text.Builtin(text.RuleSetMember)

	engine, err := text.NewEngine(set)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	result, err := engine.Rewrite("core/types.hpp", []byte("int _mFoo = 0;"))
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	fmt.Printf("Original: %s\n", result.OriginalContent)
	fmt.Printf("Modified: %s\n", result.ModifiedContent)
	fmt.Printf("Changes: %d\n", result.ReplacementCount)

	// Output:
	// Original: int _mFoo = 0;
	// Modified: int mFoo_d = 0;
	// Changes: 1
}

func ExampleValidateRules() {
	err := text.ValidateRules([]text.ReplacementRule{
		{Name: "suffix", Pattern: `_m(\w+)`, Replacement: `$1_d`},
	})
	fmt.Printf("Validation error: %v\n", err)

	// Output:
	// Validation error: rule 0: invalid rule: rule "suffix": replacement references unknown group "1_d" (use ${N} to follow a group with text)
}
