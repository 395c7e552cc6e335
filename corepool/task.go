package corepool

// Task is an opaque, callable-once work item. The core never inspects
// its body; a submitter that needs a result attaches its own delivery
// mechanism inside the closure (see the root gwpool package's
// ResultHandle).
type Task func()
