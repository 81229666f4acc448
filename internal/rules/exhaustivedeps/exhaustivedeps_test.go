package exhaustivedeps_test

import (
	"context"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"jsvet/internal/diag"
	"jsvet/internal/fix"
	"jsvet/internal/lint"
	"jsvet/internal/rules/exhaustivedeps"
	"jsvet/internal/testkit/fixture"
)

func check(t *testing.T, src string, opts lint.Options) []diag.Diagnostic {
	t.Helper()
	fx := fixture.JS(t, src)
	reg := lint.MustRegistry(exhaustivedeps.New())
	if opts != nil {
		err := reg.Configure(exhaustivedeps.Name, lint.Setting{Severity: diag.SevWarning, Options: opts})
		if err != nil {
			t.Fatalf("configure: %v", err)
		}
	}
	bag := diag.NewBag(0)
	res, err := lint.NewLinter(reg, nil).Lint(context.Background(), lint.File{
		Path:     "test.jsx",
		Tree:     fx.Tree,
		Source:   fx.File,
		Oracle:   fx.Table,
		Reporter: diag.BagReporter{Bag: bag},
	})
	if err != nil {
		t.Fatalf("lint: %v", err)
	}
	if len(res.Failures) != 0 {
		t.Fatalf("expected no rule failures, got %v", res.Failures)
	}
	return bag.Items()
}

func messages(diags []diag.Diagnostic) []string {
	out := make([]string, len(diags))
	for i, d := range diags {
		out[i] = d.Message
	}
	return out
}

func expectMessages(t *testing.T, diags []diag.Diagnostic, want ...string) {
	t.Helper()
	if want == nil {
		want = []string{}
	}
	if diff := cmp.Diff(want, messages(diags)); diff != "" {
		t.Fatalf("diagnostics mismatch (-want +got):\n%s", diff)
	}
}

// applyAll applies every fix, dangerous ones included.
func applyAll(t *testing.T, src string, diags []diag.Diagnostic) string {
	t.Helper()
	res, err := fix.ApplyText([]byte(src), diags, fix.ApplyOptions{Unsafe: true})
	if err != nil {
		t.Fatalf("apply fixes: %v", err)
	}
	return string(res.Output)
}

func TestMissingMemberChain(t *testing.T) {
	src := `function C(props) {
  useEffect(() => {
    console.log(props.foo);
  }, []);
}`
	diags := check(t, src, nil)
	expectMessages(t, diags,
		"React Hook useEffect has a missing dependency: 'props.foo'. Either include it or remove the dependency array.")
	d := diags[0]
	if d.Fix == nil || d.Fix.NewText != "[props.foo]" || d.Fix.Applicability != diag.DangerousSuggestion {
		t.Fatalf("expected dangerous fix to [props.foo], got %+v", d.Fix)
	}
	if len(d.Labels) != 1 || src[d.Labels[0].Span.Start:d.Labels[0].Span.End] != "props.foo" {
		t.Fatalf("expected a label on the read, got %+v", d.Labels)
	}
}

func TestStateSetterIsStable(t *testing.T) {
	src := `function C() {
  const [state, setState] = useState(0);
  useEffect(() => {
    setState(state + 1);
  }, []);
}`
	diags := check(t, src, nil)
	expectMessages(t, diags,
		"React Hook useEffect has a missing dependency: 'state'. Either include it or remove the dependency array.")
	if got := diags[0].Fix.NewText; got != "[state]" {
		t.Fatalf("expected [state], got %q", got)
	}
}

func TestMostSpecificEntryWins(t *testing.T) {
	src := `function C(props) {
  const v = useMemo(() => props.foo.bar, [props.foo, props.foo.bar]);
  return v;
}`
	diags := check(t, src, nil)
	expectMessages(t, diags,
		"React Hook useMemo has an unnecessary dependency: 'props.foo'. Either exclude it or remove the dependency array.")
	if got := diags[0].Fix.NewText; got != "[props.foo.bar]" {
		t.Fatalf("expected [props.foo.bar], got %q", got)
	}
}

func TestDuplicateEntry(t *testing.T) {
	src := `function C(props) {
  const local = props.x;
  useEffect(() => {
    console.log(local);
  }, [local, local]);
}`
	diags := check(t, src, nil)
	expectMessages(t, diags,
		"React Hook useEffect has a duplicate dependency: 'local'. Either omit it or remove the dependency array.")
	d := diags[0]
	second := strings.LastIndex(src, "local]")
	if int(d.Primary.Start) != second {
		t.Fatalf("expected the repeat to be reported at %d, got %d", second, d.Primary.Start)
	}
	if d.Fix.Applicability != diag.Safe || d.Fix.NewText != "[local]" {
		t.Fatalf("expected safe fix to [local], got %+v", d.Fix)
	}
}

func TestFreshArrayEntry(t *testing.T) {
	src := `function C() {
  const items = [1, 2];
  useEffect(() => {
    console.log(items);
  }, [items]);
}`
	diags := check(t, src, nil)
	expectMessages(t, diags,
		"The 'items' array makes the dependencies of useEffect Hook change on every render.")
	d := diags[0]
	if d.Fix == nil || d.Fix.NewText != "[]" || d.Fix.Applicability != diag.DangerousSuggestion {
		t.Fatalf("expected dangerous removal fix, got %+v", d.Fix)
	}
	if !strings.Contains(d.Help, "useMemo()") {
		t.Fatalf("expected useMemo help, got %q", d.Help)
	}
}

func TestFixesAreIdempotent(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"missing member", `function C(props) {
  useEffect(() => {
    console.log(props.foo);
  }, []);
}`},
		{"missing state", `function C() {
  const [state, setState] = useState(0);
  useEffect(() => {
    setState(state + 1);
  }, []);
}`},
		{"most specific", `function C(props) {
  return useMemo(() => props.foo.bar, [props.foo, props.foo.bar]);
}`},
		{"duplicate", `function C(props) {
  const local = props.x;
  useEffect(() => {
    console.log(local);
  }, [local, local]);
}`},
		{"outer", `const K = {};
function C() {
  return useCallback(() => K.x, [K]);
}`},
		{"several missing", `function C(props) {
  const [a, b] = props.pair;
  return useCallback(() => a + b + props.c, [a]);
}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			first := check(t, tt.src, nil)
			if len(first) == 0 {
				t.Fatalf("expected diagnostics before fixing")
			}
			fixed := applyAll(t, tt.src, first)
			if again := check(t, fixed, nil); len(again) != 0 {
				t.Fatalf("expected no diagnostics after fixing, got %v in\n%s", messages(again), fixed)
			}
		})
	}
}

func TestFreshRemovalIsNotReportedAgain(t *testing.T) {
	src := `function C() {
  const items = [1, 2];
  useEffect(() => {
    console.log(items);
  }, [items]);
}`
	fixed := applyAll(t, src, check(t, src, nil))
	for _, d := range check(t, fixed, nil) {
		if strings.Contains(d.Message, "change on every render") {
			t.Fatalf("expected no changes-every-render diagnostic after fixing, got %q", d.Message)
		}
	}
}

func TestDestructuringNarrows(t *testing.T) {
	src := `function C(props) {
  useEffect(() => {
    const { a, b } = props;
    console.log(a, b);
  }, []);
}`
	diags := check(t, src, nil)
	expectMessages(t, diags,
		"React Hook useEffect has missing dependencies: 'props.a' and 'props.b'. Either include them or remove the dependency array.")
	if got := diags[0].Fix.NewText; got != "[props.a, props.b]" {
		t.Fatalf("expected [props.a, props.b], got %q", got)
	}
	if len(diags[0].Labels) != 0 {
		t.Fatalf("expected no labels for several missing chains, got %v", diags[0].Labels)
	}
}

func TestDestructuringWithRestKeepsRoot(t *testing.T) {
	src := `function C(props) {
  useEffect(() => {
    const { a, ...rest } = props;
    console.log(a, rest);
  }, []);
}`
	expectMessages(t, check(t, src, nil),
		"React Hook useEffect has a missing dependency: 'props'. Either include it or remove the dependency array.")
}

func TestCalleeDropsLastStep(t *testing.T) {
	src := `function C(props) {
  return useCallback(() => props.onChange(1), [props]);
}`
	expectMessages(t, check(t, src, nil))

	src = `function C(props) {
  return useCallback(() => props.onChange(1), []);
}`
	expectMessages(t, check(t, src, nil),
		"React Hook useCallback has a missing dependency: 'props'. Either include it or remove the dependency array.")
}

func TestRefsAreStable(t *testing.T) {
	src := `function C() {
  const ref = useRef(null);
  const limit = 10;
  useEffect(() => {
    ref.current = limit;
  }, []);
}`
	expectMessages(t, check(t, src, nil))
}

func TestCurrentInListIsUnnecessary(t *testing.T) {
	src := `function C() {
  const ref = useRef(null);
  useEffect(() => {
    console.log(ref.current);
  }, [ref.current]);
}`
	diags := check(t, src, nil)
	expectMessages(t, diags,
		"React Hook useEffect has an unnecessary dependency: 'ref.current'. Either exclude it or remove the dependency array.")
	if !strings.Contains(diags[0].Help, "Mutable values") {
		t.Fatalf("expected mutable help, got %q", diags[0].Help)
	}
}

func TestOuterScopeEntries(t *testing.T) {
	src := `const K = {};
function C() {
  return useCallback(() => K.x + window.y, [K, window]);
}`
	diags := check(t, src, nil)
	expectMessages(t, diags,
		"React Hook useCallback has an unnecessary dependency: 'K'. Either exclude it or remove the dependency array.",
		"React Hook useCallback has an unnecessary dependency: 'window'. Either exclude it or remove the dependency array.")
	for _, d := range diags {
		if d.Fix == nil || d.Fix.Applicability != diag.Safe {
			t.Fatalf("expected safe removal fix, got %+v", d.Fix)
		}
		if !strings.HasPrefix(d.Help, "Outer scope values") {
			t.Fatalf("expected outer scope help, got %q", d.Help)
		}
	}
}

func TestEffectToleratesExtraEntries(t *testing.T) {
	src := `function C(props) {
  useEffect(() => {
    console.log("mounted");
  }, [props.id]);
}`
	expectMessages(t, check(t, src, nil))

	src = `function C(props) {
  return useMemo(() => 1, [props.id]);
}`
	expectMessages(t, check(t, src, nil),
		"React Hook useMemo has an unnecessary dependency: 'props.id'. Either exclude it or remove the dependency array.")
}

func TestLiteralAndComplexEntries(t *testing.T) {
	src := `function C(props) {
  useEffect(() => {
    console.log(props.items[0]);
  }, [42, props.items[0], props.items]);
}`
	diags := check(t, src, nil)
	expectMessages(t, diags,
		"The 42 literal is not a valid dependency because it never changes.",
		"React Hook useEffect has a complex expression in the dependency array. Extract it to a separate variable so it can be statically checked.")
	if diags[0].Fix == nil || diags[0].Fix.NewText != "[props.items[0], props.items]" {
		t.Fatalf("expected literal removal fix, got %+v", diags[0].Fix)
	}
	if diags[1].Fix != nil {
		t.Fatalf("expected no fix for a complex entry, got %+v", diags[1].Fix)
	}
}

func TestRequiresList(t *testing.T) {
	src := `function C() {
  return useMemo(() => 1);
}`
	diags := check(t, src, nil)
	expectMessages(t, diags,
		"React Hook useMemo does nothing when called with only one argument. Did you forget to pass an array of dependencies?")
	if got := applyAll(t, src, diags); !strings.Contains(got, "useMemo(() => 1, [])") {
		t.Fatalf("expected an empty list appended, got\n%s", got)
	}
}

func TestInfiniteChain(t *testing.T) {
	src := `function C() {
  const [count, setCount] = useState(0);
  useEffect(() => {
    setCount(count + 1);
  });
}`
	diags := check(t, src, nil)
	expectMessages(t, diags,
		"React Hook useEffect contains a call to 'setCount'. Without a list of dependencies, this can lead to an infinite chain of updates.")
	fixed := applyAll(t, src, diags)
	if !strings.Contains(fixed, "}, [count]);") {
		t.Fatalf("expected [count] appended, got\n%s", fixed)
	}
	expectMessages(t, check(t, fixed, nil))
}

func TestConditionalSetterIsNotInfinite(t *testing.T) {
	src := `function C(props) {
  const [count, setCount] = useState(0);
  useEffect(() => {
    if (props.reset) {
      setCount(0);
    }
  });
}`
	expectMessages(t, check(t, src, nil))
}

func TestAsyncEffect(t *testing.T) {
	src := `function C() {
  useEffect(async () => {
    await load();
  }, []);
}`
	expectMessages(t, check(t, src, nil),
		"Effect callbacks are synchronous to prevent race conditions. Put the async function inside the effect and call it.")
}

func TestCallbackResolution(t *testing.T) {
	src := `function C(props) {
  useEffect(debounce(props.f), []);
}`
	expectMessages(t, check(t, src, nil),
		"React Hook useEffect received a function whose dependencies are unknown. Pass an inline function instead.")

	src = `function C(props) {
  function handler() {
    console.log(props.x);
  }
  useEffect(handler, []);
}`
	expectMessages(t, check(t, src, nil),
		"React Hook useEffect has a missing dependency: 'props.x'. Either include it or remove the dependency array.")

	src = `function C(props) {
  const handler = () => props.go();
  useEffect(handler, [handler]);
}`
	expectMessages(t, check(t, src, nil))
}

func TestMissingCallback(t *testing.T) {
	src := `function C() {
  useEffect();
}`
	expectMessages(t, check(t, src, nil),
		"React Hook useEffect requires an effect callback. Did you forget to pass a callback to the hook?")
}

func TestNotArrayList(t *testing.T) {
	src := `function C(props) {
  useEffect(() => {
    console.log(props.a);
  }, props.deps);
}`
	expectMessages(t, check(t, src, nil),
		"React Hook useEffect was passed a dependency list that is not an array literal. This means the dependencies can't be statically verified.")
}

func TestStaleRefInCleanup(t *testing.T) {
	src := `function C() {
  const ref = useRef(null);
  useEffect(() => {
    return () => {
      ref.current.close();
      ref.current.reset();
    };
  }, []);
}`
	diags := check(t, src, nil)
	if len(diags) != 1 || !strings.HasPrefix(diags[0].Message, "The ref value 'ref.current' will likely have changed") {
		t.Fatalf("expected one stale ref diagnostic, got %v", messages(diags))
	}

	src = `function C() {
  const ref = useRef(null);
  ref.current = 1;
  useEffect(() => {
    return () => ref.current;
  }, []);
}`
	expectMessages(t, check(t, src, nil))
}

func TestFunctionStability(t *testing.T) {
	src := `function C() {
  const [count, setCount] = useState(0);
  function reset() {
    setCount(0);
  }
  const log = () => console.log(count);
  useEffect(() => {
    reset();
    log();
  }, [reset, log]);
}`
	diags := check(t, src, nil)
	expectMessages(t, diags,
		"The 'log' function makes the dependencies of useEffect Hook change on every render.")
	if !strings.Contains(diags[0].Help, "useCallback()") {
		t.Fatalf("expected useCallback help, got %q", diags[0].Help)
	}
}

func TestMutualRecursionTerminates(t *testing.T) {
	src := `function C() {
  function ping(n) {
    return n > 0 ? pong(n - 1) : 0;
  }
  function pong(n) {
    return ping(n);
  }
  return useCallback(() => ping(3), [ping]);
}`
	expectMessages(t, check(t, src, nil))
}

func TestConditionalFreshValue(t *testing.T) {
	src := `function C(props) {
  const style = props.big ? { size: 2 } : props.style;
  useEffect(() => {
    console.log(style);
  }, [style]);
}`
	expectMessages(t, check(t, src, nil),
		"The 'style' object makes the dependencies of useEffect Hook change on every render.")
}

func TestReactNamespaceAndImperativeHandle(t *testing.T) {
	src := `function C(props, ref) {
  React.useEffect(() => {
    console.log(props.a);
  }, []);
  useImperativeHandle(ref, () => ({ focus: props.focus }), []);
}`
	expectMessages(t, check(t, src, nil),
		"React Hook React.useEffect has a missing dependency: 'props.a'. Either include it or remove the dependency array.",
		"React Hook useImperativeHandle has a missing dependency: 'props.focus'. Either include it or remove the dependency array.")
}

func TestAdditionalHooks(t *testing.T) {
	src := `function C(props) {
  useMyEffect(() => {
    console.log(props.a);
  }, []);
}`
	expectMessages(t, check(t, src, nil))
	expectMessages(t, check(t, src, lint.Options{"additionalHooks": "^useMy"}),
		"React Hook useMyEffect has a missing dependency: 'props.a'. Either include it or remove the dependency array.")

	reg := lint.MustRegistry(exhaustivedeps.New())
	err := reg.Configure(exhaustivedeps.Name, lint.Setting{Options: lint.Options{"additionalHooks": "("}})
	if err == nil {
		t.Fatalf("expected an error for an invalid pattern")
	}
}

func TestLocalsAndTypesAreNotDependencies(t *testing.T) {
	fx := fixture.TS(t, `type Props = { a: number };
function C(props: Props) {
  useEffect(() => {
    const x: Props = props;
    let n = 0;
    n++;
    console.log(x, n);
  }, [props]);
}`)
	reg := lint.MustRegistry(exhaustivedeps.New())
	bag := diag.NewBag(0)
	_, err := lint.NewLinter(reg, nil).Lint(context.Background(), lint.File{
		Tree: fx.Tree, Source: fx.File, Oracle: fx.Table, Reporter: diag.BagReporter{Bag: bag},
	})
	if err != nil {
		t.Fatalf("lint: %v", err)
	}
	expectMessages(t, bag.Items())
}

func TestArrowComponentBoundsScopes(t *testing.T) {
	src := `function withData() {
  const cache = {};
  const C = (props) => {
    useEffect(() => {
      console.log(cache, props.id);
    }, [props.id]);
  };
  return C;
}`
	expectMessages(t, check(t, src, nil))

	// the same component as a declaration
	src = strings.Replace(src, "const C = (props) => {\n", "function C(props) {\n", 1)
	src = strings.Replace(src, "  };\n  return C;", "  }\n  return C;", 1)
	expectMessages(t, check(t, src, nil))
}

func TestArrowComponentStillRequiresOwnValues(t *testing.T) {
	src := `function withData() {
  const C = (props) => {
    const id = props.id;
    useEffect(() => {
      console.log(id);
    }, []);
  };
  return C;
}`
	expectMessages(t, check(t, src, nil),
		"React Hook useEffect has a missing dependency: 'id'. Either include it or remove the dependency array.")
}

func TestFunctionInBranchIsFresh(t *testing.T) {
	src := `function C(props) {
  const handler = props.on ? () => props.a() : function () { props.b(); };
  return useCallback(() => handler(), [handler]);
}`
	diags := check(t, src, nil)
	expectMessages(t, diags,
		"The 'handler' function makes the dependencies of useCallback Hook change on every render.")
	if !strings.Contains(diags[0].Help, "useCallback()") {
		t.Fatalf("expected useCallback help, got %q", diags[0].Help)
	}
}

func TestFunctionInLogicalIsFresh(t *testing.T) {
	src := `function C(props) {
  const onClick = props.onClick || (() => {});
  useEffect(() => {
    onClick();
  }, [onClick]);
}`
	expectMessages(t, check(t, src, nil),
		"The 'onClick' function makes the dependencies of useEffect Hook change on every render.")
}

func TestEntryExtendingUsedEntryIsUnnecessary(t *testing.T) {
	src := `function C(props) {
  return useMemo(() => props.foo.x + props.z, [props, props.foo]);
}`
	diags := check(t, src, nil)
	expectMessages(t, diags,
		"React Hook useMemo has an unnecessary dependency: 'props.foo'. Either exclude it or remove the dependency array.")
	if got := applyAll(t, src, diags); !strings.Contains(got, "[props]") {
		t.Fatalf("expected list reduced to [props], got %q", got)
	}
	expectMessages(t, check(t, applyAll(t, src, diags), nil))
}

func TestEffectToleratesExtendingEntry(t *testing.T) {
	src := `function C(props) {
  useEffect(() => {
    console.log(props.foo.x, props.z);
  }, [props, props.foo]);
}`
	expectMessages(t, check(t, src, nil))
}
