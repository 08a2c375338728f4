package condition_filter

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func decode(t *testing.T, s string) map[string]any {
	t.Helper()
	event := make(map[string]any)
	d := json.NewDecoder(strings.NewReader(s))
	d.UseNumber()
	if err := d.Decode(&event); err != nil {
		t.Fatal(err)
	}
	return event
}

func TestConditions(t *testing.T) {
	event := decode(t, `{
		"a.b": "literal",
		"a": {"b": "nested", "n": 1.5},
		"user": {"name": "liujia", "password": "x"},
		"level": "debug",
		"count": 3,
		"empty": null,
		"path": "/health/check,ok"
	}`)

	for _, c := range []struct {
		condition string
		pass      bool
	}{
		{`Exist(user.password)`, true},
		{`Exist(user,password)`, true},
		{`Exist($.user.password)`, true},
		{`Exist(user.token)`, false},
		{`Exist(level.x)`, false},
		{`Exist(empty)`, true},

		// a literal dotted key wins over the nested path
		{`EQ(a.b,"literal")`, true},
		{`EQ(a,b,"nested")`, true},
		{`EQ($.a.b,"nested")`, true},
		{`EQ(count,3)`, true},
		{`EQ(count,3.0)`, true},
		{`EQ(a.n,1.5)`, true},
		{`EQ(level,3)`, false},
		{`EQ(count,"3")`, false},
		{`EQ(empty,nil)`, true},
		{`EQ(level,nil)`, false},
		{`EQ(missing,nil)`, false},

		{`HasPrefix(user.name,"liu")`, true},
		{`HasSuffix(user,name,"jia")`, true},
		{`Contains($.user.name,"uj")`, true},
		{`Contains(path,"check,ok")`, true},
		{`Contains(count,"3")`, false},
		{`Match(user,name,^liu.*a$)`, true},
		{`Match(user.name,"^lu")`, false},

		{`Exist(user.password) && EQ(level,"debug")`, true},
		{`Exist(user.token) || EQ(level,"debug")`, true},
		{`!Exist(user.token)`, true},
		{`!!Exist(user.token)`, false},
		{`(Exist(user.token) || EQ(level,"info")) && Exist(a)`, false},
		{`Exist(user.token) || EQ(level,"info") && Exist(a)`, false},
		{`EQ(level,"debug") || EQ(level,"info") && Exist(user.token)`, true},
		{`Contains(path,"(") || Exist(a)`, true},
	} {
		root, err := parseBoolTree(c.condition)
		if err != nil {
			t.Errorf("parse %s error: %s", c.condition, err)
			continue
		}
		if pass := root.Pass(event); pass != c.pass {
			t.Errorf("`%s` pass = %v, want %v", c.condition, pass, c.pass)
		}
	}
}

func TestParseError(t *testing.T) {
	for _, condition := range []string{
		``,
		`EQ(name,first,"jia") ! && EQ(name,last,"liu")`,
		`EQ(name,first,"jia") && && EQ(name,last,"liu")`,
		`EQ(name,"jia") & EQ(name,"liu")`,
		`(Exist(a)`,
		`Exist(a))`,
		`Exist(a) Exist(b)`,
		`Exist(a) &&`,
		`Unknown(a)`,
		`Exist()`,
		`EQ(a,jia)`,
		`EQ(a)`,
		`Match(a,"(")`,
		`Before(1x)`,
		`"Exist(a)"`,
	} {
		if _, err := parseBoolTree(condition); err == nil {
			t.Errorf("parse %s should has error", condition)
		}
	}
}

func TestTimeConditions(t *testing.T) {
	event := map[string]any{"@timestamp": time.Now().Add(-time.Hour)}

	for _, c := range []struct {
		condition string
		pass      bool
	}{
		{`Before(-30m)`, true},
		{`Before(-2h)`, false},
		{`After(-2h)`, true},
		{`After(-30m)`, false},
	} {
		root, err := parseBoolTree(c.condition)
		if err != nil {
			t.Fatalf("parse %s error: %s", c.condition, err)
		}
		if pass := root.Pass(event); pass != c.pass {
			t.Errorf("`%s` pass = %v, want %v", c.condition, pass, c.pass)
		}
	}

	root, _ := parseBoolTree(`Before(1h)`)
	if root.Pass(map[string]any{"@timestamp": "2020-01-01"}) {
		t.Error("a string @timestamp should not pass")
	}
}

func TestConditionFilter(t *testing.T) {
	f, err := NewConditionFilter(map[any]any{
		"if": []any{
			`Exist(user.password)`,
			`!EQ(level,"error")`,
		},
	})
	if err != nil {
		t.Fatal(err)
	}

	for _, c := range []struct {
		event map[string]any
		pass  bool
	}{
		{map[string]any{"user": map[string]any{"password": "x"}, "level": "info"}, true},
		{map[string]any{"user": map[string]any{"password": "x"}, "level": "error"}, false},
		{map[string]any{"user": map[string]any{}, "level": "info"}, false},
	} {
		if pass := f.Pass(c.event); pass != c.pass {
			t.Errorf("%v: pass = %v, want %v", c.event, pass, c.pass)
		}
	}

	f, err = NewConditionFilter(map[any]any{})
	if err != nil || !f.Pass(map[string]any{}) {
		t.Errorf("no `if` should pass everything, err: %v", err)
	}

	f, err = NewConditionFilter(map[any]any{"if": `Exist(a.b)`})
	if err != nil || !f.Pass(map[string]any{"a": map[string]any{"b": 1}}) {
		t.Errorf("a single condition string should be accepted, err: %v", err)
	}

	if _, err = NewConditionFilter(map[any]any{"if": []any{`Exist(a) &&`}}); err == nil {
		t.Error("bad condition should fail")
	}
}

func TestArguments(t *testing.T) {
	for _, c := range []struct {
		c    string
		want []string
	}{
		{`Exist(a)`, []string{"a"}},
		{`EQ( a , b ,"x")`, []string{"a", "b", `"x"`}},
		{`Contains(a,"x, y")`, []string{"a", `"x, y"`}},
		{`EQ(a,",")`, []string{"a", `","`}},
		{`EQ("a",1)`, []string{`"a"`, "1"}},
	} {
		name := c.c[:strings.Index(c.c, "(")]
		got := arguments(name, c.c)
		if strings.Join(got, "|") != strings.Join(c.want, "|") {
			t.Errorf("arguments(%s) = %q, want %q", c.c, got, c.want)
		}
	}
}
