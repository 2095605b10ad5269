package config

// Credential is an API key read from the environment at probe time.
type Credential struct {
	Name        string // env var name, e.g. OPENAI_API_KEY
	Value       string
	Placeholder string // documented dummy value meaning "never filled in"
}

// LookupCredential reads a credential through getter.
func LookupCredential(getter EnvGetter, name, placeholder string) Credential {
	value, _ := getter.LookupEnv(name)
	return Credential{Name: name, Value: value, Placeholder: placeholder}
}

// Configured returns false when the value is unset, empty or the placeholder.
func (c Credential) Configured() bool {
	return c.Value != "" && c.Value != c.Placeholder
}

// Masked returns the value with everything but the first and last 3 chars hidden.
func (c Credential) Masked() string {
	if !c.Configured() {
		return "[not set]"
	}
	if len(c.Value) <= 6 {
		return "•••"
	}
	return c.Value[:3] + "•••" + c.Value[len(c.Value)-3:]
}

// String never exposes the raw value.
func (c Credential) String() string {
	return c.Name + "=" + c.Masked()
}
