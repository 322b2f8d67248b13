package value

// Member is one key/value pair of an Object.
type Member struct {
	Key   string
	Value any
}

// Object is a string-keyed record that keeps insertion order. Decoders use it
// so that rendered output lists members in document order; Go maps have no
// order and are rendered with sorted keys instead.
type Object struct {
	members []Member
	index   map[string]int
}

// NewObject returns an object holding members in order. Duplicate keys keep
// the position of their first occurrence and the value of the last.
func NewObject(members ...Member) *Object {
	o := &Object{}
	for _, m := range members {
		o.Set(m.Key, m.Value)
	}
	return o
}

// Set stores v under key.
func (o *Object) Set(key string, v any) *Object {
	if o.index == nil {
		o.index = make(map[string]int)
	}
	if i, ok := o.index[key]; ok {
		o.members[i].Value = v
		return o
	}
	o.index[key] = len(o.members)
	o.members = append(o.members, Member{Key: key, Value: v})
	return o
}

// Get returns the value stored under key.
func (o *Object) Get(key string) (any, bool) {
	i, ok := o.index[key]
	if !ok {
		return nil, false
	}
	return o.members[i].Value, true
}

// Len returns the number of members.
func (o *Object) Len() int {
	return len(o.members)
}

// Keys returns the member keys in insertion order.
func (o *Object) Keys() []string {
	keys := make([]string, len(o.members))
	for i, m := range o.members {
		keys[i] = m.Key
	}
	return keys
}

// Members returns a copy of the members in insertion order.
func (o *Object) Members() []Member {
	return append([]Member(nil), o.members...)
}
