// Package project inspects an existing or planned frontend project: which
// package manager it uses and how to drive it, which Node major it targets,
// and which package folders a CI workflow can run in.
package project
