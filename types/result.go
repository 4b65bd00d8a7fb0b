package types

// ControlFlow represents the control flow state of evaluation
type ControlFlow int

const (
	FlowNormal   ControlFlow = iota // normal execution
	FlowReturn                      // return statement unwinding a call
	FlowBreak                       // break statement unwinding a loop
	FlowContinue                    // continue statement
	FlowError                       // recoverable script error
)

// Result is the outcome of evaluating an expression or statement. It unifies
// normal values, control flow signals and recoverable errors so the tree walk
// never panics across script code.
type Result struct {
	Val  Value
	Flow ControlFlow
	Err  *ScriptError // set iff Flow == FlowError
}

// Ok creates a Result for normal execution with a value
func Ok(v Value) Result {
	return Result{Val: v, Flow: FlowNormal}
}

// Return creates a Result for a return statement
func Return(v Value) Result {
	return Result{Val: v, Flow: FlowReturn}
}

// Break creates a Result for a break statement
func Break() Result {
	return Result{Flow: FlowBreak}
}

// Continue creates a Result for a continue statement
func Continue() Result {
	return Result{Flow: FlowContinue}
}

// Fail creates a Result carrying a recoverable error
func Fail(err *ScriptError) Result {
	return Result{Flow: FlowError, Err: err}
}

// FailType creates a TypeError Result
func FailType(line int, format string, args ...interface{}) Result {
	return Fail(NewTypeError(line, format, args...))
}

// FailArgument creates an ArgumentError Result
func FailArgument(line int, format string, args ...interface{}) Result {
	return Fail(NewArgumentError(line, format, args...))
}

// FailUndefined creates an UndefinedError Result
func FailUndefined(line int, name string) Result {
	return Fail(NewUndefinedError(line, name))
}

// IsNormal reports whether execution may continue with the next node
func (r Result) IsNormal() bool { return r.Flow == FlowNormal }

// IsError reports whether the result carries a script error
func (r Result) IsError() bool { return r.Flow == FlowError }
