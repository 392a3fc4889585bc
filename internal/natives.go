package internal

import (
	"bufio"
	"fmt"
	"math/rand"
	"os"
	"strings"
	"time"
)

// defineNatives pre-installs the native bindings described in spec §6 into
// the global environment, the same place the teacher's defineGlobals hangs
// its own native functions off of.
func defineNatives(globals *environment, printer IPrinter) {
	globals.define("clock", &nativeFunction{
		name: "clock", arityN: 0,
		fn: func(interp *Interpreter, arguments []interface{}) interface{} {
			return float64(time.Now().UnixNano()) / 1e9
		},
	})

	stdin := bufio.NewReader(os.Stdin)
	globals.define("input", &nativeFunction{
		name: "input", arityN: 1,
		fn: func(interp *Interpreter, arguments []interface{}) interface{} {
			prompt, ok := arguments[0].(string)
			if !ok {
				throwRuntime(nil, errOnlyNumbersOrStrs)
			}
			fmt.Fprint(os.Stdout, prompt)
			line, err := stdin.ReadString('\n')
			if err != nil && line == "" {
				return ""
			}
			return strings.TrimRight(line, "\r\n")
		},
	})

	globals.define("randint", &nativeFunction{
		name: "randint", arityN: 2,
		fn: func(interp *Interpreter, arguments []interface{}) interface{} {
			min, okMin := arguments[0].(float64)
			max, okMax := arguments[1].(float64)
			if !okMin || !okMax {
				throwRuntime(nil, errOnlyNumbers)
			}
			if min > max {
				throwRuntime(nil, fmt.Errorf("randint: min (%v) greater than max (%v)", min, max))
			}
			return float64(int(min) + rand.Intn(int(max)-int(min)+1))
		},
	})
}
