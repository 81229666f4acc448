package exhaustivedeps

import (
	"fmt"
	"strings"
)

// quoteList renders 'a', 'a' and 'b', or 'a', 'b', and 'c'.
func quoteList(keys []string) string {
	quoted := make([]string, len(keys))
	for i, k := range keys {
		quoted[i] = "'" + k + "'"
	}
	switch len(quoted) {
	case 0:
		return ""
	case 1:
		return quoted[0]
	case 2:
		return quoted[0] + " and " + quoted[1]
	}
	return strings.Join(quoted[:len(quoted)-1], ", ") + ", and " + quoted[len(quoted)-1]
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

func msgMissing(hook string, keys []string) string {
	return fmt.Sprintf("React Hook %s has %s: %s. Either include %s or remove the dependency array.",
		hook, plural(len(keys), "a missing dependency", "missing dependencies"),
		quoteList(keys), plural(len(keys), "it", "them"))
}

func msgUnnecessary(hook, key string) string {
	return fmt.Sprintf("React Hook %s has an unnecessary dependency: '%s'. Either exclude it or remove the dependency array.", hook, key)
}

func helpOuterScope(key string) string {
	return fmt.Sprintf("Outer scope values like '%s' aren't valid dependencies because mutating them doesn't re-render the component.", key)
}

func helpMutable(key string) string {
	return fmt.Sprintf("Mutable values like '%s' aren't valid dependencies because mutating them doesn't re-render the component.", key)
}

func msgDuplicate(hook, key string) string {
	return fmt.Sprintf("React Hook %s has a duplicate dependency: '%s'. Either omit it or remove the dependency array.", hook, key)
}

func msgComplex(hook string) string {
	return fmt.Sprintf("React Hook %s has a complex expression in the dependency array. Extract it to a separate variable so it can be statically checked.", hook)
}

func msgLiteral(text string) string {
	return fmt.Sprintf("The %s literal is not a valid dependency because it never changes.", text)
}

func msgUnknown(hook string) string {
	return fmt.Sprintf("React Hook %s received a function whose dependencies are unknown. Pass an inline function instead.", hook)
}

func msgMissingCallback(hook string) string {
	return fmt.Sprintf("React Hook %s requires an effect callback. Did you forget to pass a callback to the hook?", hook)
}

func msgRequiresList(hook string) string {
	return fmt.Sprintf("React Hook %s does nothing when called with only one argument. Did you forget to pass an array of dependencies?", hook)
}

func msgInfiniteChain(hook, setter string) string {
	return fmt.Sprintf("React Hook %s contains a call to '%s'. Without a list of dependencies, this can lead to an infinite chain of updates.", hook, setter)
}

func msgAsyncEffect() string {
	return "Effect callbacks are synchronous to prevent race conditions. Put the async function inside the effect and call it."
}

func msgNotArray(hook string) string {
	return fmt.Sprintf("React Hook %s was passed a dependency list that is not an array literal. This means the dependencies can't be statically verified.", hook)
}

func msgStaleRef(key string) string {
	return fmt.Sprintf("The ref value '%s.current' will likely have changed by the time this effect cleanup function runs. "+
		"If this ref points to a node rendered by React, copy '%s.current' to a variable inside the effect, and use that variable in the cleanup function.", key, key)
}

func msgChangesEveryRender(hook, name, what string) string {
	return fmt.Sprintf("The '%s' %s makes the dependencies of %s Hook change on every render.", name, what, hook)
}

func helpChangesEveryRender(hook, name, what string) string {
	if what == "function" {
		return fmt.Sprintf("Move it inside the %s callback. Alternatively, wrap the definition of '%s' in its own useCallback() Hook.", hook, name)
	}
	return fmt.Sprintf("Wrap the initialization of '%s' in its own useMemo() Hook.", name)
}
