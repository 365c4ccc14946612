package dockerfile

import "fmt"

// FunctionNameEnv names the environment variable the shim reads to learn
// which function it is running as.
const FunctionNameEnv = "BATCH_FUNCTION_NAME"

// Shim returns the JavaScript appended to a handler module so it can run as
// a standalone entry point inside the container: the JSON event arrives as
// the first command-line argument, the target function name via environment,
// and the exit status reports success (0) or rejection (1).
//
// The snippet must stay free of single quotes, it is appended through a
// single-quoted shell echo.
func Shim(export string) string {
	return fmt.Sprintf(
		`const event = JSON.parse(process.argv[2]); Promise.resolve(module.exports.%s(event, { functionName: process.env.%s })).then(() => process.exit(0)).catch((err) => { console.error(err); process.exit(1); });`,
		export, FunctionNameEnv)
}
