package collections

import (
	"bytes"
	"fmt"
	"os"

	"github.com/muslewski/eventizer-sub001/core"
	"github.com/techmaster-vietnam/goerrorkit"
	"gopkg.in/yaml.v3"
)

// policyFile là cấu trúc file YAML override:
//
//	collections:
//	  offers:
//	    create: {minimumRole: moderator}
//	    fields:
//	      hidden:
//	        update: {minimumRole: admin}
type policyFile struct {
	Collections map[string]collectionSpec `yaml:"collections"`
}

type collectionSpec struct {
	Read   *policySpec          `yaml:"read"`
	Create *policySpec          `yaml:"create"`
	Update *policySpec          `yaml:"update"`
	Delete *policySpec          `yaml:"delete"`
	Admin  *policySpec          `yaml:"admin"`
	Fields map[string]fieldSpec `yaml:"fields"`
}

type fieldSpec struct {
	Read   *policySpec `yaml:"read"`
	Update *policySpec `yaml:"update"`
}

// policySpec: đúng một trong public / authenticated / minimumRole.
// ownerField chỉ đi kèm minimumRole.
type policySpec struct {
	Public        bool   `yaml:"public"`
	Authenticated bool   `yaml:"authenticated"`
	MinimumRole   string `yaml:"minimumRole"`
	OwnerField    string `yaml:"ownerField"`
}

// LoadFile đọc file override và áp lên base. path rỗng trả về bản sao của base.
func LoadFile(path string, base Set) (Set, error) {
	if path == "" {
		return base.Clone(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, goerrorkit.WrapWithMessage(err, "Không đọc được file policy").WithData(map[string]interface{}{
			"path": path,
		})
	}
	set, err := Parse(data, base)
	if err != nil {
		return nil, err
	}
	return set, nil
}

// Parse áp nội dung YAML lên bản sao của base.
// Collection lạ, key lạ, role lạ hoặc policy sai hình dạng đều là lỗi cấu hình.
func Parse(data []byte, base Set) (Set, error) {
	var pf policyFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&pf); err != nil {
		return nil, configError(fmt.Sprintf("invalid policy file: %v", err), nil)
	}

	out := base.Clone()
	for slug, spec := range pf.Collections {
		c, ok := out[slug]
		if !ok {
			return nil, configError("unknown collection in policy file", map[string]interface{}{
				"collection": slug,
			})
		}
		ops := []struct {
			op     core.Operation
			spec   *policySpec
			target *core.Policy
		}{
			{core.OperationRead, spec.Read, &c.Read},
			{core.OperationCreate, spec.Create, &c.Create},
			{core.OperationUpdate, spec.Update, &c.Update},
			{core.OperationDelete, spec.Delete, &c.Delete},
			{core.OperationAdmin, spec.Admin, &c.Admin},
		}
		for _, o := range ops {
			if o.spec == nil {
				continue
			}
			p, err := o.spec.build()
			if err != nil {
				return nil, withLocation(err, slug, string(o.op))
			}
			*o.target = p
		}

		for name, fs := range spec.Fields {
			fa := c.Fields[name]
			if fs.Read != nil {
				p, err := fs.Read.build()
				if err != nil {
					return nil, withLocation(err, slug, name+".read")
				}
				fa.Read = p
			}
			if fs.Update != nil {
				p, err := fs.Update.build()
				if err != nil {
					return nil, withLocation(err, slug, name+".update")
				}
				fa.Update = p
			}
			c.Fields[name] = fa
		}
		out[slug] = c
	}
	return out, nil
}

func (s policySpec) build() (core.Policy, error) {
	shapes := 0
	if s.Public {
		shapes++
	}
	if s.Authenticated {
		shapes++
	}
	if s.MinimumRole != "" {
		shapes++
	}
	if shapes != 1 {
		return core.Policy{}, configError("policy must set exactly one of public, authenticated, minimumRole", nil)
	}
	if s.OwnerField != "" && s.MinimumRole == "" {
		return core.Policy{}, configError("ownerField requires minimumRole", nil)
	}

	switch {
	case s.Public:
		return core.Public(), nil
	case s.Authenticated:
		return core.Authenticated(), nil
	}

	role, err := core.ParseRole(s.MinimumRole)
	if err != nil {
		return core.Policy{}, configError("unknown role in policy file", map[string]interface{}{
			"role":    s.MinimumRole,
			"allowed": core.RoleValues(),
		})
	}
	if s.OwnerField != "" {
		return core.MinimumRoleOrOwner(role, s.OwnerField), nil
	}
	return core.MinimumRole(role), nil
}

type locatedError struct {
	err        error
	collection string
	key        string
}

func (e *locatedError) Error() string {
	return fmt.Sprintf("%s.%s: %v", e.collection, e.key, e.err)
}

func (e *locatedError) Unwrap() error {
	return e.err
}

func withLocation(err error, collection, key string) error {
	return &locatedError{err: err, collection: collection, key: key}
}

func configError(msg string, data map[string]interface{}) error {
	err := goerrorkit.NewSystemError(fmt.Errorf("collections: %s", msg))
	if data != nil {
		return err.WithData(data)
	}
	return err
}
