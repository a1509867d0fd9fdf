package domain

// CommandFlag is a make recipe prefix applied to a single command.
type CommandFlag uint8

const (
	// FlagIgnore makes make ignore a failing command ("-").
	FlagIgnore CommandFlag = 1 << iota
	// FlagSilent stops make from echoing the command ("@").
	FlagSilent
	// FlagForce runs the command even under "make -n" ("+").
	FlagForce
)

// Prefix renders the flag set in the fixed order "-", "@", "+".
func (f CommandFlag) Prefix() string {
	var out []byte
	if f&FlagIgnore != 0 {
		out = append(out, '-')
	}
	if f&FlagSilent != 0 {
		out = append(out, '@')
	}
	if f&FlagForce != 0 {
		out = append(out, '+')
	}
	return string(out)
}

// Has reports whether every flag in other is set.
func (f CommandFlag) Has(other CommandFlag) bool {
	return f&other == other
}

// Arg is one command argument: either a literal token or a path reference.
type Arg struct {
	// Token is the literal text used when Ref is nil.
	Token string
	// Quote requests shell quoting of Token at render time.
	Quote bool
	// Ref, when set, is resolved and shell-quoted at render time.
	Ref *PathRef
}

// Lit returns a literal argument emitted verbatim. The caller is responsible
// for any shell escaping.
func Lit(token string) Arg {
	return Arg{Token: token}
}

// Quoted returns a literal argument that is shell-quoted at render time.
func Quoted(token string) Arg {
	return Arg{Token: token, Quote: true}
}

// Path returns an argument referring to a path.
func Path(ref PathRef) Arg {
	return Arg{Ref: &ref}
}

// IsPath reports whether the argument refers to a path.
func (a Arg) IsPath() bool {
	return a.Ref != nil
}
