// Package scad writes the crane frame as an OpenSCAD model, one pipe_segment
// call per member.
package scad

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"CraneView/internal/crane/geometry"
)

const header = `$fn = 32;

function vsub(a,b) = [a[0]-b[0], a[1]-b[1], a[2]-b[2]];
function vlen(v)   = sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2]);

module pipe_segment(p1, p2, od=pipe_od) {
    v   = vsub(p2, p1);
    len = vlen(v);

    if (len > 0) {
        axis  = (v[0] == 0 && v[1] == 0) ? [1, 0, 0] : [-v[1], v[0], 0];
        angle = acos(v[2]/len);

        translate(p1)
            rotate(a = angle, v = axis)
                cylinder(h = len, r = od/2);
    }
}

`

// Write emits the model. Members whose endpoints are missing from nodes are
// skipped; zero-length ones are dropped by the helper module itself.
func Write(w io.Writer, nodes geometry.NodeSet, members []geometry.Member, od float64) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "// Crane frame, units mm\npipe_od = %s;\n", num(od))
	bw.WriteString(header)
	bw.WriteString("union() {\n")
	for _, m := range members {
		p1, p2, ok := m.Endpoints(nodes)
		if !ok {
			continue
		}
		fmt.Fprintf(bw, "    // %s: %s -> %s\n", m.ID, m.N1, m.N2)
		fmt.Fprintf(bw, "    pipe_segment(%s, %s);\n", vec(p1), vec(p2))
	}
	bw.WriteString("}\n")
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write scad: %w", err)
	}
	return nil
}

func vec(p geometry.Point) string {
	return "[" + num(p[0]) + ", " + num(p[1]) + ", " + num(p[2]) + "]"
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
