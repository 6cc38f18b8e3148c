// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package assembly

import (
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

// nameProperties are the properties, in order, that hold a resource's
// physical name when the template sets one explicitly.
var nameProperties = []string{
	"RoleName",
	"RepositoryName",
	"ClusterName",
	"ServiceName",
	"BucketName",
	"Name",
}

// Resolve renders a template value as text. Plain values pass through.
// Fn::Join is evaluated, a Ref or name attribute of a resource with an
// explicit physical name becomes that name, and anything left unresolved becomes a ${...}
// placeholder, so the result reads like the deployed value.
func (s *Stack) Resolve(v gjson.Result) string {
	resources := gjson.GetBytes(s.Template, "Resources")
	return resolve(v, resources)
}

func resolve(v gjson.Result, resources gjson.Result) string {
	if !v.IsObject() {
		if v.IsArray() {
			return v.Raw
		}
		return v.String()
	}

	if join := v.Get("Fn::Join"); join.Exists() {
		parts := join.Array()
		if len(parts) != 2 {
			return v.Raw
		}
		var out []string
		for _, p := range parts[1].Array() {
			out = append(out, resolve(p, resources))
		}
		return strings.Join(out, parts[0].String())
	}

	if ref := v.Get("Ref"); ref.Exists() {
		id := ref.String()
		if strings.HasPrefix(id, "AWS::") {
			return "${" + id + "}"
		}
		if name, ok := physicalName(resources, id); ok {
			return name
		}
		return "${" + id + "}"
	}

	if att := v.Get("Fn::GetAtt"); att.Exists() {
		parts := att.Array()
		if len(parts) == 2 {
			id, attr := parts[0].String(), parts[1].String()
			// Name attributes (CodeCommit Name, ECR RepositoryName, ...) are
			// the physical name when the template sets one.
			if strings.HasSuffix(attr, "Name") {
				if name, ok := physicalName(resources, id); ok {
					return name
				}
			}
			return fmt.Sprintf("${%s.%s}", id, attr)
		}
	}

	if imp := v.Get("Fn::ImportValue"); imp.Exists() {
		return "${import:" + resolve(imp, resources) + "}"
	}

	return gjson.Get(v.Raw, "@ugly").String()
}

// physicalName is the explicit name property of the resource with the given
// logical id.
func physicalName(resources gjson.Result, id string) (string, bool) {
	props := resources.Get(gjson.Escape(id) + ".Properties")
	for _, p := range nameProperties {
		if name := props.Get(p); name.Type == gjson.String {
			return name.String(), true
		}
	}
	return "", false
}
